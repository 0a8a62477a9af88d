// Package serve implements the serve command, which runs validations on a
// cron schedule and exposes their results over HTTP.
package serve

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/queryvalidator/cmd/common"
	"github.com/jonesrussell/queryvalidator/internal/bootstrap"
)

// flagKeys maps command flags to configuration keys.
var flagKeys = map[string]string{
	"addr":         "server.address",
	"cron":         "schedule.cron",
	"run-on-start": "schedule.run_on_start",
}

// Command returns the serve command bound to v.
func Command(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run validations on a schedule and serve the latest results",
		Long: `Starts the status API and a cron scheduler. Each scheduled or manually
triggered run performs a full validation; only one run is active at a time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := common.BindFlags(v, cmd, flagKeys); err != nil {
				return err
			}

			deps, err := common.NewCommandDeps(v)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			if validateErr := deps.Config.ValidateServe(); validateErr != nil {
				return validateErr
			}
			return bootstrap.Serve(cmd.Context(), deps)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "status API listen address")
	flags.String("cron", "@daily", "cron expression for scheduled runs")
	flags.Bool("run-on-start", false, "start a validation run immediately")

	return cmd
}
