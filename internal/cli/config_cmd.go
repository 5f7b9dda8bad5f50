package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/billie-coop/lumen/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, path, err := loadSettings()
			if err != nil {
				return err
			}
			s := manager.Get()

			fmt.Fprintf(cmd.ErrOrStderr(), "Config file: %s\n\n", path)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "theme-name\t%s\n", s.ThemeName)
			fmt.Fprintf(w, "loading-delay\t%s\n", s.LoadingDelay)
			fmt.Fprintf(w, "show-preview\t%v\n", s.ShowPreview)
			fmt.Fprintf(w, "max-results\t%d\n", s.MaxResults)
			fmt.Fprintf(w, "log-format\t%s\n", s.LogFormat)
			return w.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := loadSettings()
			if err != nil {
				return err
			}
			if err := manager.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Set %s = %s\n", args[0], args[1])
			return nil
		},
	})
	return cmd
}

func loadSettings() (*config.Manager, string, error) {
	paths, err := resolvePaths()
	if err != nil {
		return nil, "", err
	}
	manager := config.NewManager(paths.SettingsFile())
	if err := manager.Load(); err != nil {
		return nil, "", fmt.Errorf("loading settings: %w", err)
	}
	return manager, paths.SettingsFile(), nil
}
