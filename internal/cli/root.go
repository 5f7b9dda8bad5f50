// Package cli wires the lumen command line: the launcher itself and the
// subcommands managing settings, shortcuts and themes.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/billie-coop/lumen/internal/config"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var opts config.Options

	root := &cobra.Command{
		Use:           "lumen",
		Short:         "Keyboard launcher for the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLauncher(cmd.Context(), opts)
		},
	}
	opts.Bind(root.Flags())

	root.AddCommand(newConfigCmd())
	root.AddCommand(newShortcutsCmd())
	root.AddCommand(newThemesCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

// resolvePaths returns the lumen directories, creating them if needed.
func resolvePaths() (*config.Paths, error) {
	paths, err := config.ResolvePaths()
	if err != nil {
		return nil, err
	}
	if err := paths.Ensure(); err != nil {
		return nil, err
	}
	return paths, nil
}
