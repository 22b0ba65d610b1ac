package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/menu-catalog/internal/app"
	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/theme"
	"github.com/nhle/menu-catalog/internal/validation"
)

func newCategoryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "List, add, remove, reorder and schedule categories",
	}

	var menuID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List categories in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, false, func(a *app.App, out io.Writer) error {
				cats := a.Catalog.Categories()
				if menuID != "" {
					cats = a.Catalog.CategoriesInMenu(menuID)
				}
				t := theme.NewTable("ID", "MENU", "NAME", "ITEMS", "MODIFIERS", "SHOWN")
				for _, cat := range cats {
					t.Row(cat.ID, cat.MenuID, cat.Name, strconv.Itoa(cat.ItemCount),
						strings.Join(cat.SelectedModifiers, ","), shown(a, cat.Visibility))
				}
				_, err := fmt.Fprintln(out, t.Render())
				return err
			})
		},
	}
	list.Flags().StringVar(&menuID, "menu", "", "only categories of this menu")
	cmd.AddCommand(list)

	var (
		form        validation.CategoryForm
		addMenu     string
		interactive bool
	)
	add := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a category to a menu (the active one by default)",
		Long: `Add a category to a menu, the active one by default.

Without a name, or with --interactive, the fields are asked for in a form.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				form.Name = args[0]
			}
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				if interactive || len(args) == 0 {
					if err := runForm(cmd, categoryPrompt(&form, &addMenu, a.Catalog.Menus())); err != nil {
						return err
					}
				}
				if err := validation.ValidateCategory(form).Err(); err != nil {
					return err
				}

				cat := form.Category("")
				cat.MenuID = addMenu
				cat, err := a.Catalog.AddCategory(cat)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Added category %s (%s) to menu %s\n", cat.Name, cat.ID, cat.MenuID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&form.Description, "description", "", "category description (at least 10 characters)")
	add.Flags().StringVar(&form.TaxCategory, "tax", "", "tax category")
	add.Flags().StringSliceVar(&form.SelectedModifiers, "modifier", nil, "modifier id offered on the category's items")
	add.Flags().StringVar(&addMenu, "menu", "", "owning menu id")
	add.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill the category in a form")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a category and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				n := a.Catalog.CategoryItemCount(args[0])
				if _, err := a.Lifecycle.Delete(model.KindCategory, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed category %s and %s\n", args[0], plural(n, "item"))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <id>...",
		Short: "Set the category display order; every category must be listed once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				return a.Catalog.ReorderCategories(args)
			})
		},
	})

	cmd.AddCommand(newScheduleCmd(c, "category"))
	return cmd
}
