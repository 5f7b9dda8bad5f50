package extension

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/billie-coop/lumen/internal/result"
	"github.com/billie-coop/lumen/internal/shortcuts"
)

// NewShortcutsController answers queries whose first word is a shortcut
// keyword, e.g. "wiki golang".
func NewShortcutsController(store *shortcuts.Store, icon string, open Opener) *Controller {
	return NewController("Shortcuts", func(_ context.Context, q Query) (Reply, error) {
		var items []result.Item
		for _, sc := range store.FindByKeyword(q.Keyword) {
			items = append(items, shortcutItem(sc, q.Argument, open))
		}
		return Reply{Items: items}, nil
	},
		WithIcon(icon),
		WithMatcher(func(q Query) bool {
			return len(store.FindByKeyword(q.Keyword)) > 0
		}),
	)
}

// NewDefaultSearchController offers the default-search shortcuts for any
// query. Register it last.
func NewDefaultSearchController(store *shortcuts.Store, icon string, open Opener) *Controller {
	return NewController("Default search", func(_ context.Context, q Query) (Reply, error) {
		arg := strings.TrimSpace(q.Raw)
		var items []result.Item
		for _, sc := range store.DefaultSearches() {
			items = append(items, shortcutItem(sc, arg, open))
		}
		return Reply{Items: items}, nil
	},
		WithIcon(icon),
		WithMatcher(func(q Query) bool {
			return strings.TrimSpace(q.Raw) != "" && len(store.DefaultSearches()) > 0
		}),
	)
}

func shortcutItem(sc *shortcuts.Shortcut, arg string, open Opener) result.Item {
	item := result.New(sc.Name, "", sc.IconPath())
	item.Keyword = sc.Keyword

	if arg == "" && !sc.RunWithoutArgument {
		item.Description = fmt.Sprintf("Type `%s <query>` to search.", sc.Keyword)
		return item
	}

	target := expandTarget(sc, arg)
	item.Description = fmt.Sprintf("%s **%s**\n\n`%s`", sc.Name, arg, target)
	item.OnEnter = func() error {
		return open(target)
	}
	return item
}

func expandTarget(sc *shortcuts.Shortcut, arg string) string {
	if isURL(sc.Cmd) {
		return sc.Expand(url.QueryEscape(arg))
	}
	return sc.Expand(arg)
}
