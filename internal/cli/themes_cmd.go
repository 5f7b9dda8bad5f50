package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/billie-coop/lumen/internal/config"
	"github.com/billie-coop/lumen/internal/logging"
	"github.com/billie-coop/lumen/internal/theme"
)

func newThemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List installed themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, current, err := openThemes(cmd.Context(), logging.NoOp())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDISPLAY NAME\tEXTENDS")
			for _, name := range registry.Names() {
				t, _ := registry.Get(name)
				marker := ""
				if name == current {
					marker = " *"
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\n", name, marker, t.DisplayName(), t.Manifest.ExtendTheme)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "css <name>",
		Short: "Compile a theme and print the CSS file to load",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, _, err := openThemes(cmd.Context(), logging.NoOp())
			if err != nil {
				return err
			}
			t, ok := registry.Get(args[0])
			if !ok {
				if suggestion := registry.Suggest(args[0]); suggestion != "" {
					return fmt.Errorf("unknown theme %q, did you mean %q?", args[0], suggestion)
				}
				return fmt.Errorf("unknown theme %q", args[0])
			}
			path, err := registry.CompileCSS(t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return cmd
}

// openThemes loads the bundled and user themes and returns the registry with
// the configured theme name.
func openThemes(ctx context.Context, logger logging.Logger) (*theme.Registry, string, error) {
	paths, err := resolvePaths()
	if err != nil {
		return nil, "", err
	}
	manager := config.NewManager(paths.SettingsFile())
	if err := manager.Load(); err != nil {
		return nil, "", err
	}

	registry := theme.NewRegistry(theme.WithLogger(logger))
	if err := registry.Load(ctx, themeRoots(paths, logger)...); err != nil {
		return nil, "", err
	}
	return registry, manager.Get().ThemeName, nil
}

func themeRoots(paths *config.Paths, logger logging.Logger) []string {
	var roots []string
	if dir, err := paths.ThemesDir(); err == nil {
		roots = append(roots, dir)
	} else {
		logger.Warn("Bundled themes unavailable", "error", err)
	}
	return append(roots, paths.UserThemes)
}
