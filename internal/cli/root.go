// Package cli contains all commands of the code-assist binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"code-assist/internal/infra/config"
	"code-assist/internal/infra/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile string
	cfg     *config.Config
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "code-assist",
	Short: "Code context retrieval service",
	Long: `code-assist answers editor requests with the most relevant snippet of
previously indexed code, looked up in Elasticsearch or Meilisearch.

Example usage:
  code-assist serve                                   # Start the HTTP API
  code-assist ask --snippet "func add" --file-path math.go
  code-assist healthcheck                             # Probe a running server`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return initConfig()
	},
}

// ExecuteContext runs the root command; ctx reaches every subcommand.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

// initConfig loads the optional dotenv file, then the environment.
func initConfig() error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func newLogger(out io.Writer) *slog.Logger {
	return logger.New(logger.Options{
		Level:       cfg.LogLevel,
		ServiceName: cfg.OTel.ServiceName,
		EnableOTel:  cfg.OTel.Enabled,
		Output:      out,
	})
}
