package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/menu-catalog/internal/app"
	"github.com/nhle/menu-catalog/internal/theme"
)

func newArchiveCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect, restore and purge archived menus and modifiers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived entities, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, false, func(a *app.App, out io.Writer) error {
				t := theme.NewTable("ID", "TYPE", "NAME", "ITEMS", "DELETED")
				for _, e := range a.Lifecycle.Archived() {
					t.Row(e.ID, string(e.Type), e.Name, strconv.Itoa(e.ItemCount), e.DeletedAt.Format(timeLayout))
				}
				_, err := fmt.Fprintln(out, t.Render())
				return err
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore <id>",
		Short: "Put an archived entity back at the top of its list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				e, err := a.Lifecycle.Restore(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Restored %s %s\n", e.Type, e.Name)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete an archived entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				if err := a.Lifecycle.PermanentlyDelete(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Permanently deleted %s\n", args[0])
				return nil
			})
		},
	})

	var days int
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Permanently delete entities archived longer than the retention period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				var (
					n   int
					err error
				)
				if cmd.Flags().Changed("older-than") {
					n, err = a.Lifecycle.Purge(time.Duration(days) * 24 * time.Hour)
				} else {
					n, err = a.PurgeExpired()
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Purged %d archived entities\n", n)
				return nil
			})
		},
	}
	purge.Flags().IntVar(&days, "older-than", 0, "age in days (default lifecycle.retention_days)")
	cmd.AddCommand(purge)

	return cmd
}
