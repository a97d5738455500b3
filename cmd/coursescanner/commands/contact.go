package commands

import (
	"fmt"

	"course-scanner/internal/contact"

	"github.com/spf13/cobra"
)

func newContactCmd(app *App) *cobra.Command {
	var m contact.Message

	cmd := &cobra.Command{
		Use:   "contact --name <name> --email <email> --purpose business|individual --message <text>",
		Short: "Sends a message to the course scanner team.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := app.Contact.Submit(cmd.Context(), m)
			if err != nil {
				return err
			}
			if reply == "" {
				reply = "Message sent."
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	cmd.Flags().StringVar(&m.Name, "name", "", "your name")
	cmd.Flags().StringVar(&m.Email, "email", "", "reply address")
	cmd.Flags().StringVar(&m.Purpose, "purpose", "", "business or individual")
	cmd.Flags().StringVar(&m.Message, "message", "", "message text")
	return cmd
}
