package main

import (
	"context"
	"fmt"
	"os"

	"myspace/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env for local development
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}

	// Logs go to stderr so command output stays pipeable
	logger := cli.SetupLogger(cfg.LogLevel, os.Stderr)

	app, err := cli.NewApp(context.Background(), cfg, logger, cli.ColorEnabled(os.Stdout))
	if err != nil {
		return err
	}
	defer app.Close()

	return cli.NewRootCmd(app).Execute()
}
