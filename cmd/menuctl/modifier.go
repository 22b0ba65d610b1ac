package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/menu-catalog/internal/app"
	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/theme"
	"github.com/nhle/menu-catalog/internal/validation"
)

func newModifierCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "modifier",
		Aliases: []string{"mod"},
		Short:   "Manage shared modifier groups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List modifiers and their options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, false, func(a *app.App, out io.Writer) error {
				t := theme.NewTable("ID", "NAME", "TYPE", "OPTIONS")
				for _, m := range a.Catalog.Modifiers() {
					opts := make([]string, len(m.Options))
					for i, o := range m.Options {
						opts[i] = fmt.Sprintf("%s %.2f/%s", o.Name, o.Price, o.Unit)
					}
					t.Row(m.ID, m.Name, m.Type, strings.Join(opts, ", "))
				}
				_, err := fmt.Fprintln(out, t.Render())
				return err
			})
		},
	})

	var (
		form        validation.ModifierForm
		options     []string
		interactive bool
	)
	add := &cobra.Command{
		Use:   "add [name] --option name=price:unit...",
		Short: "Add a modifier group",
		Long: `Add a modifier group.

Without a name, or with --interactive, the fields are asked for in a form.`,
		Example: `  menuctl modifier add Sauces --option Ketchup=0.5:portion --option Aioli=1:portion
  menuctl modifier add -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				form.Name = args[0]
			}
			form.Options = modifierOptions(options)
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				if interactive || len(args) == 0 {
					entries := promptEntries(options)
					if err := runForm(cmd, modifierPrompt(&form, &entries)); err != nil {
						return err
					}
					form.Options = modifierOptions(splitEntries(entries))
				}
				if err := validation.ValidateModifier(form).Err(); err != nil {
					return err
				}

				m, err := a.Catalog.AddModifier(form.Modifier(""))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Added modifier %s (%s)\n", m.Name, m.ID)
				return nil
			})
		},
	}
	add.Flags().StringArrayVar(&options, "option", nil, "option as name=price:unit (repeatable)")
	add.Flags().StringVar(&form.Type, "type", model.ModifierTypeOptional, "optional or required")
	add.Flags().BoolVar(&form.AllowMultiple, "multiple", false, "allow choosing several options")
	add.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill the modifier in a form")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "attach <category> <modifier>",
		Short: "Offer a modifier on a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				return a.Catalog.AttachModifier(args[0], args[1])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "detach <category> <modifier>",
		Short: "Stop offering a modifier on a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				return a.Catalog.DetachModifier(args[0], args[1])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <id>...",
		Short: "Set the modifier display order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				return a.Catalog.ReorderModifiers(args)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "archive <id>",
		Short: "Move a modifier to the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				if _, err := a.Lifecycle.Delete(model.KindModifier, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Archived modifier %s\n", args[0])
				return nil
			})
		},
	})

	return cmd
}
