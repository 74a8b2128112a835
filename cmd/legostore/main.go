package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/legostore/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

var (
	// Global flags
	configPath  string
	catalogPath string
	logFile     string
	verbose     bool

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "legostore",
	Short: "LEGOdudes storefront in the terminal",
	Long: `legostore shows the LEGOdudes catalog and keeps a shopping cart for
the current session. The cart lives in memory and is gone when you quit.

Run without arguments to open the storefront.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("config.Load: %w", err)
		}

		if catalogPath != "" {
			cfg.CatalogPath = catalogPath
		}
		if logFile != "" {
			cfg.Log.File = logFile
		}
		if verbose {
			cfg.Log.Level = "debug"
		}

		logger, err = newLogger(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runShop,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the product catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "legostore", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "path to a YAML catalog (default: bundled catalog)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "only list products in this category")

	rootCmd.AddCommand(catalogCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
