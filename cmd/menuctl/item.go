package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/menu-catalog/internal/app"
	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/theme"
	"github.com/nhle/menu-catalog/internal/validation"
)

func newItemCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "List, add, copy, move and delete items",
	}

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List items in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, false, func(a *app.App, out io.Writer) error {
				items := a.Catalog.Items()
				if category != "" {
					items = a.Catalog.ItemsInCategory(category)
				}
				t := theme.NewTable("ID", "CATEGORY", "NAME", "PRICE", "STATUS", "SHOWN")
				for _, it := range items {
					t.Row(it.ID, it.Category, it.Name, formatPrices(it.PriceOptions),
						theme.StatusStyle(it.Status).Render(it.Status), shown(a, it.Visibility))
				}
				_, err := fmt.Fprintln(out, t.Render())
				return err
			})
		},
	}
	list.Flags().StringVar(&category, "category", "", "only items of this category")
	cmd.AddCommand(list)

	cmd.AddCommand(newItemAddCmd(c))

	var target string
	copyCmd := &cobra.Command{
		Use:   "copy <id>... --to <category>",
		Short: "Copy items into a category under new ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				copies, err := a.Bulk.Copy(args, target)
				if err != nil {
					return err
				}
				for _, it := range copies {
					fmt.Fprintf(out, "Copied %s as %s\n", it.Name, it.ID)
				}
				return nil
			})
		},
	}
	copyCmd.Flags().StringVar(&target, "to", "", "target category id")
	_ = copyCmd.MarkFlagRequired("to")
	cmd.AddCommand(copyCmd)

	moveCmd := &cobra.Command{
		Use:   "move <id>... --to <category>",
		Short: "Move items into another category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				n, err := a.Bulk.Move(args, target)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Moved %s to %s\n", plural(n, "item"), target)
				return nil
			})
		},
	}
	moveCmd.Flags().StringVar(&target, "to", "", "target category id")
	_ = moveCmd.MarkFlagRequired("to")
	cmd.AddCommand(moveCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete items; unknown ids are ignored",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				n, err := a.Bulk.Delete(args)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %s\n", plural(n, "item"))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <id>...",
		Short: "Set the item display order; every item must be listed once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				return a.Catalog.ReorderItems(args)
			})
		},
	})

	var optionIDs []string
	selectCmd := &cobra.Command{
		Use:   "select-modifier <item> <modifier>",
		Short: "Attach a copy of a modifier to an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				return a.Catalog.SelectModifier(args[0], args[1], optionIDs)
			})
		},
	}
	selectCmd.Flags().StringSliceVar(&optionIDs, "option", nil, "option ids to include (default all)")
	cmd.AddCommand(selectCmd)

	cmd.AddCommand(newScheduleCmd(c, "item"))
	return cmd
}

func newItemAddCmd(c *cli) *cobra.Command {
	var (
		form        validation.ItemForm
		price       string
		options     []string
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "add [name] --category <id>",
		Short: "Add an item with a single price or named price options",
		Long: `Add an item with a single price or named price options.

Without a name, or with --interactive, the fields are asked for in a form.`,
		Example: `  menuctl item add "Soup of the day" --category starters --description "Ask your server" --price 6.50
  menuctl item add Pizza --category mains --description "Stone-baked" --option Small=9 --option Large=13
  menuctl item add -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				form.Name = args[0]
			}
			form.Status = model.ItemStatusAvailable
			form.IsAvailable = true
			form.PriceOptions = priceOptions(price, options)

			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				if interactive || len(args) == 0 {
					prices := price
					if len(options) > 0 {
						prices = promptEntries(options)
					}
					f, err := itemPrompt(&form, &prices, a.Catalog.Categories())
					if err != nil {
						return err
					}
					if err := runForm(cmd, f); err != nil {
						return err
					}
					form.PriceOptions = parsePrices(prices)
				}
				if err := validation.ValidateItem(form).Err(); err != nil {
					return err
				}
				if form.Category == "" {
					return errors.New(`required flag "category" not set`)
				}

				it, err := a.Catalog.AddItem(form.Item(""))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Added item %s (%s)\n", it.Name, it.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&form.Category, "category", "", "owning category id")
	cmd.Flags().StringVar(&form.Description, "description", "", "item description (at least 10 characters)")
	cmd.Flags().StringVar(&price, "price", "", "single price")
	cmd.Flags().StringArrayVar(&options, "option", nil, "named price option as name=price (repeatable)")
	cmd.Flags().StringSliceVar(&form.Images, "image", nil, "image URL (up to 3)")
	cmd.Flags().StringSliceVar(&form.Labels, "label", nil, "label such as vegan or spicy")
	cmd.Flags().IntVar(&form.PreparationTime, "prep", 0, "preparation time in minutes")
	cmd.Flags().BoolVar(&form.IsFeatured, "featured", false, "feature the item")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill the item in a form")
	return cmd
}

func formatPrices(opts []model.PriceOption) string {
	if model.IsSimplePricing(opts) {
		return fmt.Sprintf("%.2f", opts[0].Price)
	}
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = fmt.Sprintf("%s %.2f", o.Name, o.Price)
	}
	return strings.Join(parts, ", ")
}
