package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/DevWael/semantiq-search/internal/adapters/driven/auth"
	httpserver "github.com/DevWael/semantiq-search/internal/adapters/driving/http"
	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/worker"
)

// --- serve ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server and background worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, cleanup, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		app.ensureCollection(ctx)

		w := worker.New(worker.Config{
			TaskQueue:      app.taskQueue,
			Orchestrator:   app.orchestrator,
			Concurrency:    getEnvInt("WORKER_CONCURRENCY", 2),
			DequeueTimeout: time.Duration(getEnvInt("WORKER_DEQUEUE_TIMEOUT_SEC", 5)) * time.Second,
		})
		w.Start(ctx)
		defer w.Stop()

		cfg := httpserver.Config{
			Host:    getEnv("HOST", "0.0.0.0"),
			Port:    getEnvInt("PORT", 8080),
			Version: version,
		}
		server := httpserver.NewServer(
			cfg,
			app.searchService,
			app.orchestrator,
			app.authAdapter,
			app.settingsStore,
			app.embedder,
			app.vectorStore,
			app.taskQueue,
			app.db,
			redisPinger{app.redisClient},
		)

		return server.Start()
	},
}

// --- sync ---

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a full bulk sync to completion",
	Long: `Start a bulk sync session and drive it batch by batch until the
whole corpus has been processed. Progress is printed after each batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, cleanup, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		app.ensureCollection(ctx)

		session, err := app.orchestrator.StartBulkSync(ctx)
		if err != nil {
			return fmt.Errorf("starting sync: %w", err)
		}
		fmt.Printf("syncing %d items\n", session.Total)

		for {
			result, err := app.orchestrator.ProcessBatch(ctx)
			if err != nil {
				if errors.Is(err, domain.ErrSyncInProgress) {
					// Another driver holds the batch lock, wait it out
					time.Sleep(time.Second)
					continue
				}
				return fmt.Errorf("processing batch: %w", err)
			}

			progress, perr := app.orchestrator.Progress(ctx)
			if perr == nil {
				fmt.Printf("processed %d/%d (errors: %d)\n",
					progress.Processed, progress.Total, progress.ErrorCount)
			}

			if result.IsComplete {
				break
			}
		}

		progress, err := app.orchestrator.Progress(ctx)
		if err != nil {
			return nil
		}
		fmt.Printf("sync complete: %d processed, %d errors\n", progress.Processed, progress.ErrorCount)
		for _, itemErr := range progress.Errors {
			fmt.Printf("  post %d: %s\n", itemErr.PostID, itemErr.Message)
		}
		return nil
	},
}

// --- status ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current sync session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		app, cleanup, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		session, err := app.orchestrator.Progress(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNoActiveSession) {
				fmt.Println("no active sync session")
				return nil
			}
			return err
		}

		return printJSON(session)
	},
}

// --- search ---

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a semantic search query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		limit, _ := cmd.Flags().GetInt("limit")
		typesStr, _ := cmd.Flags().GetString("types")

		var types []string
		if typesStr != "" {
			types = strings.Split(typesStr, ",")
			for i := range types {
				types[i] = strings.TrimSpace(types[i])
			}
		}

		app, cleanup, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		results, err := app.searchService.Search(ctx, strings.Join(args, " "), limit, types)
		if err != nil {
			return err
		}

		return printJSON(results)
	},
}

// --- token ---

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl, _ := cmd.Flags().GetDuration("ttl")
		subject, _ := cmd.Flags().GetString("subject")

		// Minting only needs the signing secret, not the full app graph
		adapter := auth.NewAdapter(getEnv("JWT_SECRET", "development-secret-change-in-production"))
		token, err := adapter.GenerateToken(subject, ttl)
		if err != nil {
			return err
		}

		fmt.Println(token)
		return nil
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum number of results")
	searchCmd.Flags().String("types", "", "comma separated content types to search")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	tokenCmd.Flags().String("subject", "admin", "token subject")
}
