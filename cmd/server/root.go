package main

import (
	"fmt"

	"github.com/anonto42/yatube/backend/pkg/config"
	"github.com/anonto42/yatube/backend/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "yatube",
	Short:         "Yatube blogging backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serve,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, groupCmd, userCmd)
}

// bootstrap loads configuration, sets up logging and opens the databases.
// Callers must CloseDB the result.
func bootstrap() (*config.Config, *config.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Env); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize databases: %w", err)
	}
	return cfg, db, nil
}
