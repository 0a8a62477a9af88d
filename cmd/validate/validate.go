// Package validate implements the validate command, which runs every
// extracted SQL example once against the endpoint and writes the artifacts.
package validate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/queryvalidator/cmd/common"
	"github.com/jonesrussell/queryvalidator/internal/bootstrap"
)

// flagKeys maps command flags to configuration keys.
var flagKeys = map[string]string{
	"path":               "sources.path",
	"url":                "endpoint.url",
	"process-local":      "sources.local",
	"process-demo":       "sources.catalog",
	"process-dashboards": "sources.dashboards",
	"all-queries":        "output.all_queries",
	"failed-queries":     "output.failed_queries",
	"report":             "output.report",
}

// Command returns the validate command bound to v.
func Command(v *viper.Viper) *cobra.Command {
	var (
		noColor       bool
		failOnFailure bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Execute every documented SQL example and report failures and slow queries",
		Long: `Collects SQL examples from local markdown files, the demo console catalog
and the public dashboards, executes each one against the QuestDB REST API,
re-runs slow queries once to measure a hot latency, and writes the full query
log, the failed query log and a summary report.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := common.BindFlags(v, cmd, flagKeys); err != nil {
				return err
			}

			deps, err := common.NewCommandDeps(v)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			color := !noColor && isTerminal(cmd.OutOrStdout())
			return run(cmd, deps, color, failOnFailure)
		},
	}

	flags := cmd.Flags()
	flags.String("path", ".", "root folder to search for .md and .mdx files")
	flags.String("url", "http://localhost:9000", "QuestDB REST API base URL")
	flags.String("process-local", "yes", "process local markdown files (yes/no)")
	flags.String("process-demo", "yes", "process demo queries from the live console JSON (yes/no)")
	flags.String("process-dashboards", "yes", "process dashboard queries (yes/no)")
	flags.String("all-queries", "all_queries.sql", "path of the full query log")
	flags.String("failed-queries", "failed_queries.sql", "path of the failed query log")
	flags.String("report", "query_validation_report.txt", "path of the summary report")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&failOnFailure, "fail-on-failure", false, "exit with an error when any query failed")

	return cmd
}

func run(cmd *cobra.Command, deps *bootstrap.CommandDeps, color, failOnFailure bool) error {
	ctx := cmd.Context()
	cfg := deps.Config

	pipeline := bootstrap.SetupPipeline(ctx, deps)
	defer func() {
		if err := pipeline.Close(); err != nil {
			deps.Logger.Error("Failed to close run history", "error", err)
		}
	}()

	var searchRoot string
	if cfg.Sources.Local {
		searchRoot = cfg.Sources.Path
		if abs, err := filepath.Abs(searchRoot); err == nil {
			searchRoot = abs
		}
	}

	presenter := NewPresenter(cmd.OutOrStdout(), pipeline.Thresholds(), pipeline.Paths(), cfg.Endpoint.URL, searchRoot, color)
	summary, err := pipeline.Run(ctx, presenter)
	if err != nil {
		return fmt.Errorf("validation run: %w", err)
	}

	if failOnFailure && summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", common.ErrQueriesFailed, summary.Failed, summary.Total)
	}
	return nil
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
