package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/promptpilot/promptpilot/internal/config"
	"github.com/promptpilot/promptpilot/internal/llm"
)

func main() {
	// Best effort; a missing .env file is fine
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "promptpilot",
		Short: "PromptPilot - prompt enhancement service",
		Long: `PromptPilot enhances raw prompts with proven prompting techniques.
It serves an HTTP API and provides one-shot enhancement from the command line.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.LLM.Enabled {
				llmClient = llm.NewClient(
					cfg.LLM.URL,
					cfg.LLM.APIKey,
					cfg.LLM.Model,
					cfg.LLM.MaxTokens,
					cfg.LLM.Temperature,
					cfg.LLMTimeout(),
				)
			}

			return nil
		},
	}

	rootCmd.AddCommand(
		serveCmd(),
		enhanceCmd(),
		techniquesCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configCmd shows current configuration
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Current configuration:")
			fmt.Println()

			fmt.Println("LLM refiner:")
			fmt.Printf("  Enabled:     %v\n", cfg.LLM.Enabled)
			fmt.Printf("  URL:         %s\n", cfg.LLM.URL)
			fmt.Printf("  Model:       %s\n", cfg.LLM.Model)
			fmt.Printf("  Max Tokens:  %d\n", cfg.LLM.MaxTokens)
			fmt.Printf("  Temperature: %.2f\n", cfg.LLM.Temperature)
			fmt.Printf("  API Key:     %s\n", maskSecret(cfg.LLM.APIKey))
			fmt.Println()

			fmt.Println("Database:")
			fmt.Printf("  PostgreSQL: %s\n", maskSecret(cfg.Database.PostgresURL))
			fmt.Println()

			fmt.Println("Server:")
			fmt.Printf("  Host: %s\n", cfg.Server.Host)
			fmt.Printf("  Port: %d\n", cfg.Server.Port)
			fmt.Println()

			fmt.Println("Cache:")
			fmt.Printf("  TTL:         %s\n", cfg.CacheTTL())
			fmt.Printf("  Max Entries: %d\n", cfg.Cache.MaxEntries)
			fmt.Println()

			fmt.Println("Environment variables:")
			fmt.Println("  PROMPTPILOT_LLM_URL, PROMPTPILOT_LLM_API_KEY, PROMPTPILOT_LLM_MODEL")
			fmt.Println("  PROMPTPILOT_LLM_ENABLED, PROMPTPILOT_LLM_TIMEOUT_SECONDS")
			fmt.Println("  PROMPTPILOT_POSTGRES_URL")
			fmt.Println("  PROMPTPILOT_SERVER_HOST, PROMPTPILOT_SERVER_PORT")

			return nil
		},
	}
}

// versionCmd shows version information
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("PromptPilot %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)
		},
	}
}
