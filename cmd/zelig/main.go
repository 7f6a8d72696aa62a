// Command zelig runs and operates the Zelig travel assistant backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zelig/zelig-backend/internal/config"
	"github.com/zelig/zelig-backend/internal/services"
)

// skipConfig marks commands that run without loading the environment config.
const skipConfig = "skip-config"

var (
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "zelig",
	Short: "Zelig - Morocco travel assistant backend",
	Long: `Zelig answers travel questions about Morocco, grades the safety of a
city from recent news, and translates between English and Moroccan Darija.

Run "zelig serve" to start the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		env, level := os.Getenv("ENV"), os.Getenv("LOG_LEVEL")
		if _, ok := cmd.Annotations[skipConfig]; !ok {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			env, level = cfg.Environment, cfg.LogLevel
		}
		if verbose {
			level = "DEBUG"
		}

		var err error
		logger, err = services.NewBaseLogger(env, level)
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
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd, indexCmd, translateCmd, hashPasswordCmd, tokenCmd, diagnoseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
