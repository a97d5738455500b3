package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"course-scanner/cmd/coursescanner/commands"
	"course-scanner/internal/config"
	"course-scanner/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Development()})
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = commands.ExecuteContext(ctx, commands.NewApp(cfg, log))
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
