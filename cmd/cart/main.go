// Package main is the entry point for the cart CLI and server.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rl1809/cart-manager/pkg/config"
	"github.com/rl1809/cart-manager/pkg/logger"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configPath string
	logLevel   string

	cfg config.Config
	log *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errOperationFailed) {
			fmt.Fprintln(os.Stderr, "error: "+err.Error())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cart",
	Short: "cart - shopping cart manager",
	Long: `cart keeps a shopping cart in a key-value store and checks the
catalog's stock before every quantity increase.

Run "cart serve" to expose the cart over HTTP and gRPC, or use the
add, remove, update and show commands to work on the cart directly.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		cfg = loaded
		log = logger.New(logger.Options{
			Service: "cart",
			Env:     cfg.AppEnv,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  logOutput(cmd),
		})
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("cart version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CART_CONFIG"), "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// logOutput sends logs to stderr so command output on stdout stays clean.
func logOutput(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
