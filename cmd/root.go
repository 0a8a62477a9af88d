// Package cmd implements the command-line interface for the query validator.
// It provides the root command and the validate and serve subcommands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/queryvalidator/cmd/serve"
	"github.com/jonesrussell/queryvalidator/cmd/validate"
	"github.com/jonesrussell/queryvalidator/internal/config"
	"github.com/jonesrussell/queryvalidator/internal/config/app"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// v holds the configuration shared by all commands.
	v = viper.New()

	// rootCmd represents the root command for the queryvalidator CLI.
	rootCmd = &cobra.Command{
		Use:   "queryvalidator",
		Short: "Validate the SQL examples published in documentation",
		Long: `queryvalidator extracts SQL examples from documentation, the demo console
catalog and public dashboards, executes them against a QuestDB REST endpoint
and reports failures and slow queries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "queryvalidator version %s\n", app.DefaultVersion)
		},
	})

	rootCmd.AddCommand(validate.Command(v))
	rootCmd.AddCommand(serve.Command(v))
}

// initConfig binds the global flags and loads defaults, the config file,
// .env and the environment into v. cmd is the command being executed.
func initConfig(cmd *cobra.Command) error {
	if err := v.BindPFlag("app.debug", cmd.Root().PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := config.InitializeViper(v, cfgFile); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	Debug = v.GetBool("app.debug")
	return nil
}
