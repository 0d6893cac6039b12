package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	app "github.com/mohammadpnp/candidate-onboarding/internal/application/onboarding"
	"github.com/mohammadpnp/candidate-onboarding/internal/bootstrap"
	"github.com/mohammadpnp/candidate-onboarding/internal/config"
	"github.com/mohammadpnp/candidate-onboarding/internal/logging"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process <batch-job-id>",
		Short: "Run onboarding for a stored batch job and print the summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = os.Getenv("CONFIG_FILE")
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			lg, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = lg.Sync() }()

			db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
				TranslateError: true,
				Logger:         logger.Default.LogMode(logger.Silent),
			})
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			pool, err := pgxpool.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("create pgx pool: %w", err)
			}
			defer pool.Close()

			services := bootstrap.NewServices(db, pool, cfg, lg)
			out, err := services.ProcessBatchJob.Execute(cmd.Context(), app.ProcessBatchJobInput{ID: args[0]})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
