package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DevWael/semantiq-search/internal/logging"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "semantiq-search",
	Short: "Semantic search service for WordPress-style content",
	Long: `semantiq-search keeps a content corpus mirrored into a Qdrant vector
collection and answers natural-language search queries against it.

Configuration is read from the environment; a .env file in the working
directory is loaded when present.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine, the environment may be set directly
		_ = godotenv.Load()

		logging.Init(logging.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		})
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, syncCmd, statusCmd, searchCmd, tokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
