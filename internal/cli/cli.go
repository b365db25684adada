// Package cli implements the hierview command-line interface.
//
// Commands:
//   - serve: build the hierarchy from the source spreadsheet, cache it, and serve it
//   - build: build and cache the hierarchy, then exit
//   - show: print a summary (or the document) of an existing cache
//
// Configuration comes from flags, environment variables (a .env file is loaded
// when present), and an optional TOML file, in that order of precedence.
package cli

import (
	"context"
	"io"
	"os"

	"hierview/adapters/excel"
	"hierview/app"
	"hierview/internal"
	"hierview/internal/cache"
	"hierview/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// CLI holds state shared by all commands. Config is populated before any command runs.
type CLI struct {
	out    io.Writer
	logger *internal.Logger
	config *config.Config

	configPath string
	verbose    bool
	overrides  overrides
}

// overrides are flag values that win over env and file configuration
type overrides struct {
	source string
	sheet  string
	cache  string
	port   string
}

// New creates a CLI writing command output to out and logs to errOut
func New(out, errOut io.Writer) *CLI {
	return &CLI{
		out:    out,
		logger: internal.NewLogger(errOut, internal.LogLevelInfo),
	}
}

// Execute runs the hierview CLI with args
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// RootCommand builds the command tree
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "hierview",
		Short:         "hierview turns spreadsheet rows into a browsable hierarchy",
		Long:          `hierview reads a spreadsheet, folds every row into a path through a tree keyed by its cell values, caches the tree as JSON and serves it to a D3 visualization.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "TOML config file (env CONFIG_FILE)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.overrides.source, "source", "", "source spreadsheet, xlsx or csv (env SOURCE_FILE)")
	flags.StringVar(&c.overrides.sheet, "sheet", "", "sheet to read, defaults to the first sheet (env SHEET_NAME)")
	flags.StringVar(&c.overrides.cache, "cache", "", "cached JSON document path (env CACHE_FILE)")
	flags.StringVar(&c.overrides.port, "port", "", "HTTP listen port (env PORT)")

	root.AddCommand(c.newServeCmd())
	root.AddCommand(c.newBuildCmd())
	root.AddCommand(c.newShowCmd())

	return root
}

func (c *CLI) loadConfig() error {
	if err := godotenv.Load(); err != nil {
		c.logger.Debug("No .env file found, using system environment variables")
	}

	path := c.configPath
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if c.overrides.source != "" {
		cfg.Data.SourceFile = c.overrides.source
	}
	if c.overrides.sheet != "" {
		cfg.Data.SheetName = c.overrides.sheet
	}
	if c.overrides.cache != "" {
		cfg.Data.CacheFile = c.overrides.cache
	}
	if c.overrides.port != "" {
		cfg.Server.Port = c.overrides.port
	}

	level := internal.ParseLogLevel(cfg.LogLevel)
	if c.verbose {
		level = internal.LogLevelDebug
	}
	c.logger.SetLevel(level)

	c.config = cfg
	return nil
}

func (c *CLI) store() *cache.Store {
	return cache.NewStore(c.config.Data.CacheFile, c.logger)
}

func (c *CLI) hierarchyService() *app.HierarchyService {
	excelConfig := excel.DefaultExcelConfig()
	excelConfig.FilePath = c.config.Data.SourceFile
	excelConfig.SheetName = c.config.Data.SheetName

	reader := excel.NewDataReader(excelConfig, c.logger)
	return app.NewHierarchyService(reader, c.store(), c.logger)
}
