package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/todomvc/internal/controller"
	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/router"
	"github.com/idilsaglam/todomvc/internal/store"
	"github.com/idilsaglam/todomvc/internal/tui"
	"github.com/idilsaglam/todomvc/internal/ui"
)

// quietController returns a controller whose renders are discarded; the
// one-shot commands report results with OK/Fail lines instead.
func (a *app) quietController() *controller.Controller {
	return controller.New(a.model, router.New(""), controller.ViewFunc(func(controller.State) {}))
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <title...>",
		Short:   "Add a new item (title can be multiple words)",
		Example: `  todo add "Buy milk"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return usageErr("add: empty title")
			}
			c := a.quietController()
			defer c.Close()

			c.Create(title)
			if err := a.saved(); err != nil {
				return err
			}
			items := a.model.Items()
			a.printer.OK(fmt.Sprintf("added #%d %s", len(items), items[len(items)-1].ID))
			return nil
		},
	}
}

func (a *app) lsCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List items",
		Long: `List items through the current filter.

--filter accepts a filter name (all, active, completed) or a navigation hash
such as "#/active". Unrecognized values show every item.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := &ui.ListView{
				Printer:   a.printer,
				Group:     a.cfg.UI.Group,
				Positions: ui.Positions(a.model.Items()),
			}
			// the first render happens as the controller attaches
			c := controller.New(a.model, router.New(filterHash(filter)), view)
			c.Close()
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "all, active, completed, or a hash like #/active")
	return cmd
}

// filterHash turns a bare filter name into a hash; hashes pass through.
func filterHash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#") || strings.HasPrefix(s, "/") {
		return s
	}
	return "#/" + s
}

func (a *app) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <ref>",
		Aliases: []string{"done"},
		Short:   "Toggle done for an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			c := a.quietController()
			defer c.Close()
			c.Toggle(it.ID)
			if err := a.saved(); err != nil {
				return err
			}
			state := "active"
			if !it.Completed {
				state = "completed"
			}
			a.printer.OK("toggled: " + it.Title + " is " + state)
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <title...>",
		Short: "Rename an item; an empty title removes it",
		Example: `  todo edit 2 "Buy oat milk"
  todo edit 2 ""`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			c := a.quietController()
			defer c.Close()
			c.Update(it.ID, title)
			if err := a.saved(); err != nil {
				return err
			}
			if _, still := a.model.Get(it.ID); !still {
				a.printer.OK("removed: " + it.Title)
				return nil
			}
			a.printer.OK("renamed")
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <ref>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			c := a.quietController()
			defer c.Close()
			c.Destroy(it.ID)
			if err := a.saved(); err != nil {
				return err
			}
			a.printer.OK("removed: " + it.Title)
			return nil
		},
	}
}

func (a *app) toggleAllCmd() *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "toggle-all",
		Short: "Mark every item as completed (or active with --undo)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.quietController()
			defer c.Close()
			c.ToggleAll(!undo)
			if err := a.saved(); err != nil {
				return err
			}
			if undo {
				a.printer.OK(fmt.Sprintf("marked %d active", a.model.ActiveCount()))
			} else {
				a.printer.OK(fmt.Sprintf("marked %d completed", a.model.CompletedCount()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "mark every item as active instead")
	return cmd
}

func (a *app) clearCompletedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Remove every completed item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.model.CompletedCount()
			c := a.quietController()
			defer c.Close()
			c.DestroyCompleted()
			if err := a.saved(); err != nil {
				return err
			}
			a.printer.OK(fmt.Sprintf("cleared %d", n))
			return nil
		},
	}
}

func (a *app) tuiCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			opts := []tui.Option{tui.WithTheme(a.cfg.UI.Theme)}
			if w, ok := a.store.(store.Watcher); ok {
				changes, err := w.Watch(ctx, a.model.Namespace())
				if err != nil {
					a.logger.Warn("external changes will not be shown", zap.Error(err))
				} else {
					opts = append(opts, tui.WithChanges(changes))
				}
			}
			if err := tui.Run(ctx, a.model, router.New(filterHash(filter)), opts...); err != nil {
				return runtimeErr("tui", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "initial filter")
	return cmd
}

// resolve finds the item a user reference points at: a 1-based position in
// the full list, an exact id, or a unique id prefix.
func (a *app) resolve(ref string) (model.Item, error) {
	items := a.model.Items()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return model.Item{}, &exitError{
				code: ExitUsage,
				err:  fmt.Errorf("index out of range: have %d, got %d", len(items), n),
				hint: "Hint: run `todo ls` to see valid indexes",
			}
		}
		return items[n-1], nil
	}
	if it, ok := a.model.Get(ref); ok {
		return it, nil
	}
	var matches []model.Item
	for _, it := range items {
		if strings.HasPrefix(it.ID, ref) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Item{}, &exitError{
			code: ExitUsage,
			err:  fmt.Errorf("no item matches %q", ref),
			hint: "Hint: run `todo ls` to see valid indexes",
		}
	}
	return model.Item{}, usageErr("%q matches %d items; use a longer id prefix", ref, len(matches))
}
