package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vsinha/supplysim/pkg/config"
	"github.com/vsinha/supplysim/pkg/interfaces/cli/commands"
	"github.com/vsinha/supplysim/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	cmd := commands.NewSimulateCommand(cfg, log)
	if _, err := cmd.Execute(context.Background()); err != nil {
		log.Error().Err(err).Msg("simulation failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
