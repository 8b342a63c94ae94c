package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/star-refiner/internal/config"
	"github.com/jonathan/star-refiner/internal/db"
	"github.com/jonathan/star-refiner/internal/llm"
	"github.com/jonathan/star-refiner/internal/server"
	"github.com/jonathan/star-refiner/internal/workflow"
)

var (
	servePort    int
	serveWorkers int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the answer refinement loop as REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().Int64Var(&serveWorkers, "max-concurrent", server.DefaultMaxConcurrent, "Maximum refinement runs in flight")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	var (
		database *db.DB
		opts     []workflow.Option
	)
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		opts = append(opts, workflow.WithStore(database))
	} else {
		log.Println("DATABASE_URL not set; run history is disabled")
	}

	orch := workflow.New(client, cfg.WorkflowConfig(), opts...)

	srv := server.New(server.Config{
		Port:          servePort,
		MaxConcurrent: serveWorkers,
	}, orch, database)

	return srv.Start()
}
