package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"engmarket/orchestrator/internal/config"
	"engmarket/orchestrator/internal/logging"
	"engmarket/orchestrator/internal/orchestrator"
	"engmarket/orchestrator/internal/repository"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Apply the database schema and create demo pipeline runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context())
		},
	}
}

func runSeed(ctx context.Context) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewLogger(cfg.Debug)
	defer logger.Sync()

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	logger.Info("Schema applied")

	store := repository.NewPostgresStore(pool)

	// One unexecuted demo pipeline per template so the API has data to
	// show on a fresh install.
	seedInputs := map[string]interface{}{
		"project_name": "Demo Office Tower",
	}
	for _, tmpl := range orchestrator.Templates() {
		pipeline, ok := orchestrator.BuildFromTemplate(tmpl.ID, seedInputs)
		if !ok {
			continue
		}
		if err := store.SavePipeline(ctx, pipeline); err != nil {
			logger.Error("Failed to seed pipeline", "template", tmpl.ID, "error", err)
			continue
		}
		logger.Info("Seeded pipeline", "template", tmpl.ID, "id", pipeline.ID)
	}

	logger.Info("Seeding complete!")
	return nil
}
