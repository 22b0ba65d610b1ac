package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/menu-catalog/internal/app"
	"github.com/nhle/menu-catalog/internal/logging"
	"github.com/nhle/menu-catalog/internal/model"
)

// cli carries state shared by every command of one invocation.
type cli struct {
	cfgFile   string
	storePath string
	verbose   bool

	cfg    *model.AppConfig
	logger *zap.Logger
	app    *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "menuctl",
		Short: "Author restaurant menus, categories, items and modifiers",
		Long: `menuctl edits a restaurant menu catalog kept in a local SQLite file.

Menus hold categories, categories hold items, and items take snapshots of
shared modifier groups. Categories and items can be scheduled to show only
on certain days and hours.`,
		SilenceUsage: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", model.DefaultConfigPath(), "config file")
	root.PersistentFlags().StringVar(&c.storePath, "store", "", "catalog database (overrides store.path)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newInitCmd(c),
		newSeedCmd(c),
		newExportCmd(c),
		newImportCmd(c),
		newMenuCmd(c),
		newCategoryCmd(c),
		newItemCmd(c),
		newModifierCmd(c),
		newArchiveCmd(c),
		newVisibleCmd(c),
	)
	return root
}

// loadConfig reads the config file and applies flag overrides.
func (c *cli) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := model.LoadConfig(c.cfgFile)
	if err != nil {
		return err
	}
	if c.storePath != "" {
		cfg.Store.Path = c.storePath
	}
	if c.verbose {
		cfg.Log.Level = "debug"
	}
	c.cfg = cfg
	return nil
}

// open loads config, builds the logger and opens the catalog.
func (c *cli) open(ctx context.Context) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	if err := c.loadConfig(); err != nil {
		return nil, err
	}
	logger, err := logging.New(c.cfg.Log)
	if err != nil {
		return nil, err
	}
	c.logger = logger

	a, err := app.Open(ctx, c.cfg, logger)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

// run opens the catalog, calls fn and saves the catalog if fn changed it.
// The catalog is closed when run returns.
func (c *cli) run(cmd *cobra.Command, mutates bool, fn func(a *app.App, out io.Writer) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); err == nil {
			err = cerr
		}
		c.app = nil
	}()

	if err := fn(a, cmd.OutOrStdout()); err != nil {
		return err
	}
	if mutates {
		return a.Save(ctx)
	}
	return nil
}

const timeLayout = "2006-01-02 15:04"

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	if strings.HasSuffix(word, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(word, "y"))
	}
	return fmt.Sprintf("%d %ss", n, word)
}
