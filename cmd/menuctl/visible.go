package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/menu-catalog/internal/app"
	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/theme"
)

func newVisibleCmd(c *cli) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "visible",
		Short: "List the items customers can see now, or at --at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, false, func(a *app.App, out io.Writer) error {
				now := a.Visibility.Now()
				if at != "" {
					t, err := time.Parse(time.RFC3339, at)
					if err != nil {
						return fmt.Errorf("parsing --at: %w", err)
					}
					now = t.In(now.Location())
				}

				fmt.Fprintln(out, theme.HeaderStyle.Render("Visible at "+now.Format("Mon "+timeLayout)))
				t := theme.NewTable("ID", "CATEGORY", "NAME", "PRICE")
				for _, it := range a.Catalog.VisibleItems(now) {
					t.Row(it.ID, it.Category, it.Name, formatPrices(it.PriceOptions))
				}
				_, err := fmt.Fprintln(out, t.Render())
				return err
			})
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "evaluate at this RFC 3339 instant")
	return cmd
}

// newScheduleCmd sets the visibility schedule of a category or an item.
func newScheduleCmd(c *cli, kind string) *cobra.Command {
	var (
		mode  string
		days  []string
		hours string
		until string
	)
	cmd := &cobra.Command{
		Use:   "schedule <id>",
		Short: fmt.Sprintf("Set when a %s is shown to customers", kind),
		Example: fmt.Sprintf(`  menuctl %[1]s schedule brunch --mode showOnlyWithin --days saturday,sunday --hours 9-14
  menuctl %[1]s schedule specials --mode hideUntil --until 2025-06-01T00:00:00Z
  menuctl %[1]s schedule bar --mode showOnlyWithin --days friday --hours 18-2`, kind),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				s := model.VisibilitySettings{Visibility: mode}
				if until != "" {
					t, err := time.Parse(time.RFC3339, until)
					if err != nil {
						return fmt.Errorf("parsing --until: %w", err)
					}
					s.HideUntil = &t
				}
				if len(days) > 0 || hours != "" {
					w := &model.TimeWindow{Days: days}
					if hours != "" {
						r, err := parseHours(hours)
						if err != nil {
							return err
						}
						w.TimeRange = r
					}
					s.ShowOnlyWithin = w
				}

				s, err := a.Visibility.Normalize(s)
				if err != nil {
					return err
				}
				if err := setVisibility(a, kind, args[0], &s); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s is %s\n", kind, args[0], describe(a, &s))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", model.VisibilityVisible, "visible, hidden, hideUntil or showOnlyWithin")
	cmd.Flags().StringSliceVar(&days, "days", nil, "weekdays for showOnlyWithin")
	cmd.Flags().StringVar(&hours, "hours", "", "start-end hours for showOnlyWithin, e.g. 9-17 or 18-2")
	cmd.Flags().StringVar(&until, "until", "", "RFC 3339 instant for hideUntil")
	return cmd
}

func setVisibility(a *app.App, kind, id string, s *model.VisibilitySettings) error {
	switch kind {
	case "category":
		cat, err := a.Catalog.Category(id)
		if err != nil {
			return err
		}
		cat.Visibility = s
		return a.Catalog.UpdateCategory(cat)
	default:
		it, err := a.Catalog.Item(id)
		if err != nil {
			return err
		}
		it.Visibility = s
		return a.Catalog.UpdateItem(it)
	}
}

func parseHours(s string) ([]int, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return nil, fmt.Errorf("parsing --hours %q: want start-end", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return nil, fmt.Errorf("parsing --hours %q: %w", s, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return nil, fmt.Errorf("parsing --hours %q: %w", s, err)
	}
	return []int{start, end}, nil
}

// describe says whether s is visible now and when that changes.
func describe(a *app.App, s *model.VisibilitySettings) string {
	state := "hidden"
	if a.Visibility.Visible(s) {
		state = "visible"
	}
	next, ok := a.Visibility.NextChange(s)
	if !ok {
		return state
	}
	return fmt.Sprintf("%s until %s", state, next.Format("Mon "+timeLayout))
}

// shown is describe colored for a table cell.
func shown(a *app.App, s *model.VisibilitySettings) string {
	return theme.VisibilityStyle(a.Visibility.Visible(s)).Render(describe(a, s))
}
