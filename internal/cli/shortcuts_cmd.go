package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/billie-coop/lumen/internal/shortcuts"
)

func newShortcutsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortcuts",
		Short: "Manage keyword shortcuts",
	}

	cmd.AddCommand(newShortcutsListCmd())
	cmd.AddCommand(newShortcutsAddCmd())
	cmd.AddCommand(newShortcutsRemoveCmd())
	return cmd
}

func openShortcuts() (*shortcuts.Store, error) {
	paths, err := resolvePaths()
	if err != nil {
		return nil, err
	}
	return shortcuts.Load(paths.ShortcutsFile(), paths.DataFile("icons"))
}

func newShortcutsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show all shortcuts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openShortcuts()
			if err != nil {
				return err
			}

			all := store.All()
			if len(all) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No shortcuts configured.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEYWORD\tNAME\tDEFAULT\tCOMMAND\tID")
			for _, sc := range all {
				fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%s\n", sc.Keyword, sc.Name, sc.IsDefaultSearch, sc.Cmd, sc.ID)
			}
			return w.Flush()
		},
	}
}

func newShortcutsAddCmd() *cobra.Command {
	var (
		icon          string
		noDefault     bool
		runWithoutArg bool
	)

	cmd := &cobra.Command{
		Use:   "add <keyword> <name> <command>",
		Short: "Add a shortcut; %s in the command is replaced by the query",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword, name, command := args[0], args[1], args[2]
			if strings.ContainsAny(keyword, " \t") {
				return fmt.Errorf("keyword %q must not contain spaces", keyword)
			}

			store, err := openShortcuts()
			if err != nil {
				return err
			}

			sc := shortcuts.New(name, keyword, command, icon)
			sc.IsDefaultSearch = !noDefault
			sc.RunWithoutArgument = runWithoutArg
			id := store.Add(sc)
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Added %s (%s)\n", keyword, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&icon, "icon", "", "Icon file")
	cmd.Flags().BoolVar(&noDefault, "no-default-search", false, "Do not offer for unmatched queries")
	cmd.Flags().BoolVar(&runWithoutArg, "run-without-argument", false, "Allow running with an empty query")
	return cmd
}

func newShortcutsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id|keyword>",
		Aliases: []string{"rm"},
		Short:   "Remove a shortcut",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openShortcuts()
			if err != nil {
				return err
			}

			ids := []string{args[0]}
			if matches := store.FindByKeyword(args[0]); len(matches) > 0 {
				ids = ids[:0]
				for _, sc := range matches {
					ids = append(ids, sc.ID)
				}
			}
			for _, id := range ids {
				if err := store.Remove(id); err != nil {
					return err
				}
			}
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Removed %d shortcut(s)\n", len(ids))
			return nil
		},
	}
}
