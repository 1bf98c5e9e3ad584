// Package main is the museumctl CLI: offline index builds and local queries against
// the same artifacts the API server loads.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/museum-search/internal/app"
	"github.com/kailas-cloud/museum-search/internal/config"
	logpkg "github.com/kailas-cloud/museum-search/internal/logger"
)

// cli carries the state resolved by the root command for its subcommands.
type cli struct {
	configPath string
	env        string
	logLevel   string
	logFile    string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "museumctl",
		Short: "Build and query the museum catalog search index",
		Long: `museumctl works with the three search artifacts: the catalog corpus,
the topic model and the nearest-neighbor index built from them.

build-index turns the topic model's document distributions into an index blob;
search, exhibitions and tui load all three artifacts and answer queries locally.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: config/<env>.yaml)")
	root.PersistentFlags().StringVar(&c.env, "env", "", "environment name (default: $ENV or local)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override logging.level")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "write logs to a file instead of stderr")

	root.AddCommand(
		newBuildIndexCmd(c),
		newSearchCmd(c),
		newExhibitionsCmd(c),
		newTUICmd(c),
		newVersionCmd(),
	)
	return root
}

func (c *cli) init() error {
	_ = godotenv.Load()

	if c.env == "" {
		c.env = config.GetEnv()
	}
	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.Load(c.env)
	}
	if err != nil {
		return err
	}

	level := c.cfg.Logging.Level
	if c.logLevel != "" {
		level = c.logLevel
	}
	opts := []logpkg.Option{logpkg.WithLevel(level)}
	switch {
	case c.logFile != "":
		opts = append(opts, logpkg.WithOutput(c.logFile))
	case c.cfg.Logging.Output != "":
		opts = append(opts, logpkg.WithOutput(c.cfg.Logging.Output))
	}
	c.logger, err = logpkg.NewLogger(c.env, opts...)
	return err
}

// load wires and loads the search context. The returned cleanup releases the cache.
func (c *cli) load(ctx context.Context) (*app.App, func(), error) {
	opts, cleanup, err := app.Wire(ctx, &c.cfg, c.logger)
	if err != nil {
		return nil, cleanup, err
	}
	a, err := app.Load(ctx, opts)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return a, cleanup, nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
