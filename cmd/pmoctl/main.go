// Command pmoctl provisions and checks a PMO Review API deployment.
package main

import (
	"fmt"
	"os"
	"time"

	"pmo-review-api/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	envFile string
	timeout time.Duration
	verbose bool
}

// app is built in PersistentPreRunE and shared by the subcommands.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	opts   *rootOptions
	closer func()
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	a := &app{opts: opts}

	cmd := &cobra.Command{
		Use:   "pmoctl",
		Short: "Administration tool for the PMO Review API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(opts.envFile); err != nil && cmd.Flags().Changed("env-file") {
				return fmt.Errorf("failed to load %s: %w", opts.envFile, err)
			}
			a.cfg = config.Load()
			a.log = config.NewLogger(os.Stderr, !opts.verbose)
			a.closer = func() { _ = a.log.Sync() }
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closer != nil {
				a.closer()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	pf.DurationVar(&opts.timeout, "timeout", 90*time.Second, "overall operation timeout")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newCreateAdminCmd(a),
		newMigrateCmd(a),
		newCheckGeminiCmd(a),
	)
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
