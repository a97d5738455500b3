package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"course-scanner/internal/export"
	"course-scanner/internal/search"
	"course-scanner/internal/sftpclient"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		f          queryFlags
		outPath    string
		uploadSFTP bool
	)

	cmd := &cobra.Command{
		Use:   "export --out <file.csv> [--sftp]",
		Short: "Writes a filtered result set to CSV, optionally uploading it via SFTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.filterOptions()
			if err != nil {
				return err
			}
			res, err := f.run(cmd.Context(), app)
			if err != nil {
				return err
			}
			if res.Outcome == search.OutcomeFailed {
				return res.Err
			}

			courses := res.Apply(opts)
			if err := export.WriteResultsCSVFile(outPath, courses); err != nil {
				return err
			}
			app.Log.Info().Str("path", outPath).Int("courses", len(courses)).Msg("results exported")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d offers to %s\n", len(courses), outPath)

			if !uploadSFTP {
				return nil
			}
			return upload(cmd.Context(), app, outPath)
		},
	}
	f.bindSearch(cmd)
	f.bindFilters(cmd)
	cmd.Flags().StringVar(&f.name, "name", "", "export a course name search instead")
	cmd.Flags().StringVar(&outPath, "out", "course-results.csv", "output csv path")
	cmd.Flags().BoolVar(&uploadSFTP, "sftp", false, "upload the generated CSV via SFTP")
	return cmd
}

func upload(ctx context.Context, app *App, outPath string) error {
	cfg := app.Cfg
	upCfg := sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
		KnownHosts:            cfg.SFTPKnownHosts,
	}

	upCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	remoteName := filepath.Base(outPath)
	if err := sftpclient.UploadFile(upCtx, upCfg, outPath, remoteName); err != nil {
		return err
	}
	app.Log.Info().Str("addr", upCfg.Addr()).Str("dir", upCfg.RemoteDir).Str("file", remoteName).Msg("uploaded to sftp")
	return nil
}
