package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/firpredict/internal/config"
	"github.com/sant0-9/firpredict/internal/logging"
	"github.com/sant0-9/firpredict/internal/tui"
)

var version = "dev"

var (
	// Global flags
	verbose      bool
	configPath   string
	providerFlag string
	modelFlag    string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "firpredict",
	Short: "Predict Bhartiya Nyaya Sanhita (BNS) 2023 sections for a case description",
	Long: `firpredict suggests the BNS 2023 sections relevant to a free-text case
description, with a short description of each, and can save the result as a
Word, Markdown or HTML report.

Run without arguments to start the interactive interface.

Predictions are AI-generated and should be verified by legal professionals.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		// The TUI owns the terminal, so it logs to a file
		opts := logging.Options{Level: cfg.Log.Level, Verbose: verbose, Console: true}
		if cmd == cmd.Root() {
			opts.File = cfg.Log.File
			if opts.File == "" {
				opts.File = config.DefaultLogPath()
			}
		}
		logger, err = logging.New(opts)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

func runInteractive() error {
	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	app := tui.NewApp(tui.Options{
		Config:       cfg,
		Logger:       logger,
		GlamourStyle: style,
	})
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

// loadConfig reads the config file, then applies .env/environment and flags
func loadConfig() (*config.Config, error) {
	var c *config.Config
	var err error
	if configPath != "" {
		c, err = config.LoadFrom(configPath)
	} else {
		c, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c == nil {
		c = config.DefaultConfig()
		if configPath != "" {
			c.SetPath(configPath)
		}
	}

	c.ApplyEnv()
	applyFlags(c)
	return c, nil
}

func applyFlags(c *config.Config) {
	if providerFlag != "" && providerFlag != c.Provider {
		c.Provider = providerFlag
		c.APIKey = ""
		c.Model = ""
		if p := config.GetProvider(providerFlag); p != nil {
			c.Model = p.DefaultModel
		}
		c.FillAPIKey()
	}
	if modelFlag != "" {
		c.Model = modelFlag
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/firpredict/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&providerFlag, "provider", "p", "", "LLM provider (gemini, openai, anthropic, groq, openrouter, ollama, custom)")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model name (default: provider default)")

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(providersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
