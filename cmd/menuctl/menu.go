package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nhle/menu-catalog/internal/app"
	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/theme"
)

func newMenuCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "List, add, activate and archive menus",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List menus in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, false, func(a *app.App, out io.Writer) error {
				active := a.Catalog.ActiveMenuID()
				t := theme.NewTable("", "ID", "NAME", "STATUS", "ITEMS", "MODIFIED")
				for _, m := range a.Catalog.Menus() {
					mark := ""
					if m.ID == active {
						mark = "*"
					}
					t.Row(mark, m.ID, m.Name, theme.StatusStyle(m.Status).Render(m.Status),
						strconv.Itoa(m.ItemCount), m.LastModified.Format(timeLayout))
				}
				_, err := fmt.Fprintln(out, t.Render())
				return err
			})
		},
	})

	var description, status string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				m, err := a.Catalog.AddMenu(model.Menu{Name: args[0], Description: description, Status: status})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Added menu %s (%s)\n", m.Name, m.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&description, "description", "", "menu description")
	add.Flags().StringVar(&status, "status", model.MenuStatusDraft, "active, inactive or draft")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "activate <id>",
		Short: "Make a menu the one new categories join",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				return a.Catalog.SetActiveMenu(args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <id>...",
		Short: "Set the menu display order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				return a.Catalog.ReorderMenus(args)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "archive <id>",
		Short: "Move a menu to the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				if _, err := a.Lifecycle.Delete(model.KindMenu, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Archived menu %s\n", args[0])
				return nil
			})
		},
	})

	return cmd
}
