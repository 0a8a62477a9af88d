// Package common provides shared utilities for command implementations.
package common

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/queryvalidator/internal/bootstrap"
)

// NewCommandDeps loads configuration from v and creates the logger.
func NewCommandDeps(v *viper.Viper) (*bootstrap.CommandDeps, error) {
	deps, err := bootstrap.NewCommandDeps(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDeps, err)
	}
	return deps, nil
}

// BindFlags binds each named flag of cmd to its configuration key.
func BindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind %s flag: %w", flag, err)
		}
	}
	return nil
}

// PrintErrorf prints a formatted error message to stderr.
func PrintErrorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
