package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/paperstreet/tradetalk/internal/api"
	"github.com/paperstreet/tradetalk/internal/assistant"
	"github.com/paperstreet/tradetalk/internal/config"
	"github.com/paperstreet/tradetalk/internal/dispatch"
	"github.com/paperstreet/tradetalk/internal/marketdata"
	"github.com/paperstreet/tradetalk/internal/session"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// Initialize configuration early
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "tradetalk",
		Short: "TradeTalk - Conversational Market Data Assistant",
		Long: `TradeTalk is a conversational assistant for a trading simulator.
It answers stock questions, compares symbols, surfaces movers and news,
and keeps per-user conversation history.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			if cfg.Debug {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			// Ensure directories exist
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start the interactive chat
			return runChatREPL(cfg)
		},
	}

	// Add subcommands
	rootCmd.AddCommand(newChatCmd(cfg))
	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(cfg))

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")

	return rootCmd
}

// newChatCmd creates the interactive chat command
func newChatCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive terminal chat with the assistant.
Example: tradetalk chat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChatREPL(cfg)
		},
	}
}

// newServeCmd creates the HTTP server command
func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the REST API server exposing chat, voice, and history endpoints.
Example: tradetalk serve --addr=:8090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.ListenAddr = addr
			}

			svc, cleanup, err := buildService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			server := api.NewServer(cfg.ListenAddr, svc)
			slog.Info("starting server", "addr", cfg.ListenAddr)
			return server.ListenAndServe()
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from config)")

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("TradeTalk v1.0.0")
			fmt.Println("Conversational Market Data Assistant")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Manage TradeTalk configuration settings",
	}

	// config show subcommand
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	// config validate subcommand
	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cfg)
		},
	})

	return configCmd
}

// buildService wires the gateway, store, and generator from config.
// The returned cleanup closes the store.
func buildService(ctx context.Context, cfg *config.Config) (*assistant.Service, func(), error) {
	opts := []marketdata.GatewayOption{
		marketdata.WithArticleScraper(marketdata.NewArticleScraper(cfg.ProviderTimeout)),
	}
	if cfg.CacheEnabled {
		opts = append(opts, marketdata.WithQuoteCache(cfg.QuoteCacheTTL, cfg.QuoteCacheSize))
	}
	gateway := marketdata.NewGateway(
		marketdata.NewFMPClient(cfg.FMPAPIKey, cfg.ProviderTimeout),
		marketdata.NewYahooClient(cfg.ProviderTimeout),
		opts...,
	)

	var store session.Store
	switch cfg.StoreDriver {
	case "memory":
		store = session.NewMemoryStore()
	default:
		gormStore, err := session.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		store = gormStore
	}

	var generator assistant.Generator
	if cfg.OpenAIAPIKey != "" {
		chatModel, err := assistant.NewChatModelGenerator(ctx, cfg)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("init chat model: %w", err)
		}
		generator = chatModel
	} else {
		slog.Warn("OPENAI_API_KEY not set, using canned replies")
	}

	svc := assistant.NewService(dispatch.NewDispatcher(gateway), store, generator)
	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Warn("closing session store", "error", err)
		}
	}
	return svc, cleanup, nil
}

// showConfig displays the current configuration
func showConfig(cfg *config.Config) {
	fmt.Println("📋 Current TradeTalk Configuration:")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("Data Directory:       %s\n", cfg.DataDir)
	fmt.Println()
	fmt.Printf("Provider Timeout:     %s\n", cfg.ProviderTimeout)
	fmt.Printf("Quote Cache TTL:      %s\n", cfg.QuoteCacheTTL)
	fmt.Printf("Quote Cache Size:     %d\n", cfg.QuoteCacheSize)
	fmt.Printf("Cache Enabled:        %t\n", cfg.CacheEnabled)
	fmt.Println()
	fmt.Printf("Chat Model:           %s\n", cfg.ChatModel)
	fmt.Printf("OpenAI Base URL:      %s\n", cfg.OpenAIBaseURL)
	fmt.Println()
	fmt.Printf("Store Driver:         %s\n", cfg.StoreDriver)
	fmt.Printf("Database Path:        %s\n", cfg.DBPath)
	fmt.Printf("Listen Address:       %s\n", cfg.ListenAddr)
	fmt.Println()
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
	fmt.Println()

	// API key status without leaking values
	fmt.Println("🔑 API Keys:")
	printKeyStatus("FMP_API_KEY", cfg.FMPAPIKey)
	printKeyStatus("OPENAI_API_KEY", cfg.OpenAIAPIKey)
}

func printKeyStatus(name, value string) {
	if value != "" {
		fmt.Printf("  %s: ✅ set\n", name)
	} else {
		fmt.Printf("  %s: ❌ not set\n", name)
	}
}

// validateConfig checks the configuration for common problems
func validateConfig(cfg *config.Config) error {
	fmt.Println("🔍 Validating TradeTalk configuration...")

	var problems []string

	if cfg.FMPAPIKey == "" {
		problems = append(problems, "FMP_API_KEY is not set, quotes will rely on the fallback provider")
	}
	if cfg.OpenAIAPIKey == "" {
		problems = append(problems, "OPENAI_API_KEY is not set, replies will be canned")
	}
	if cfg.StoreDriver != "memory" && cfg.StoreDriver != "sqlite" {
		problems = append(problems, fmt.Sprintf("unknown store driver %q, expected memory or sqlite", cfg.StoreDriver))
	}
	if _, err := os.Stat(cfg.DataDir); err != nil {
		problems = append(problems, fmt.Sprintf("data directory %s is not accessible", cfg.DataDir))
	}

	if len(problems) == 0 {
		fmt.Println("✅ Configuration looks good!")
		return nil
	}

	for _, p := range problems {
		fmt.Printf("⚠️  %s\n", p)
	}
	return nil
}
