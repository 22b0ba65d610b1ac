package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/menu-catalog/internal/app"
	"github.com/nhle/menu-catalog/internal/factories"
	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/store"
)

func newInitCmd(c *cli) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and create the catalog database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.cfgFile); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", c.cfgFile)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config %s: %w", c.cfgFile, err)
			}

			cfg := model.DefaultAppConfig()
			if c.storePath != "" {
				cfg.Store.Path = c.storePath
			}
			if err := model.SaveConfig(c.cfgFile, cfg); err != nil {
				return err
			}
			c.cfg = cfg

			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				fmt.Fprintf(out, "Wrote %s\nCatalog database: %s\n", c.cfgFile, cfg.Store.Path)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newSeedCmd(c *cli) *cobra.Command {
	var seed int64
	opts := factories.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the catalog with generated demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				sum, err := factories.New(seed).Populate(a.Catalog, opts)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Seeded %s, %s, %s and %s\n",
					plural(sum.Menus, "menu"), plural(sum.Categories, "category"),
					plural(sum.Items, "item"), plural(sum.Modifiers, "modifier"))
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().IntVar(&opts.Menus, "menus", opts.Menus, "number of menus")
	cmd.Flags().IntVar(&opts.CategoriesPerMenu, "categories", opts.CategoriesPerMenu, "categories per menu")
	cmd.Flags().IntVar(&opts.ItemsPerCategory, "items", opts.ItemsPerCategory, "items per category")
	cmd.Flags().IntVar(&opts.Modifiers, "modifiers", opts.Modifiers, "number of modifier groups")
	return cmd
}

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file|->",
		Short: "Write the whole catalog as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, false, func(a *app.App, out io.Writer) error {
				snap := a.Catalog.Snapshot()
				if args[0] == "-" {
					return store.WriteYAML(out, snap)
				}
				if err := store.WriteYAMLFile(args[0], snap); err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported %s to %s\n", plural(len(snap.Items), "item"), args[0])
				return nil
			})
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the catalog with a YAML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, true, func(a *app.App, out io.Writer) error {
				snap, err := store.ReadYAMLFile(args[0])
				if err != nil {
					return err
				}
				if err := a.Catalog.Load(snap); err != nil {
					return fmt.Errorf("importing %s: %w", args[0], err)
				}
				fmt.Fprintf(out, "Imported %s, %s and %s\n",
					plural(len(snap.Menus), "menu"), plural(len(snap.Categories), "category"),
					plural(len(snap.Items), "item"))
				return nil
			})
		},
	}
}
