// Package cli implements the trustmeter command line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/mchmarny/trustmeter/pkg/cache"
	"github.com/mchmarny/trustmeter/pkg/config"
	"github.com/mchmarny/trustmeter/pkg/logging"
	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "trustmeter"
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	outputFormat = formatJSON

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	cacheFilePathFlag = &urfave.StringFlag{
		Name:  "cache",
		Usage: "Path to the Sqlite rating cache file (optional, defaults to $HOME/.trustmeter/ratings.db)",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(false)

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	HomeDir string
	Conf    *config.Config
	Store   *cache.Store
	Debug   bool
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 appName,
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "CLI for scoring the trustworthiness of ML models, datasets, and code repos",
		Flags: []urfave.Flag{
			debugFlag,
			cacheFilePathFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			authCmd,
			scoreCmd,
			lineageCmd,
			cacheCmd,
		},
		Before: func(c *urfave.Context) error {
			if c.Bool(debugFlag.Name) {
				initLogging(true)
			}

			homeDir, created, err := config.GetOrCreateHomeDir(appName)
			if err != nil {
				return fmt.Errorf("resolving home dir: %w", err)
			}
			if created {
				slog.Debug("created app home dir", "path", homeDir)
			}

			conf, err := config.ReadOrCreate(homeDir)
			if err != nil {
				return fmt.Errorf("reading config: %w", err)
			}

			f := c.String(formatFlag.Name)
			if f == "" {
				f = conf.Format
			}
			if f == formatYAML || f == "yml" {
				outputFormat = formatYAML
			}

			cachePath := c.String(cacheFilePathFlag.Name)
			if cachePath == "" {
				cachePath = path.Join(homeDir, cache.DataFileName)
			}
			store, err := cache.Open(cachePath)
			if err != nil {
				return fmt.Errorf("opening rating cache: %w", err)
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				HomeDir: homeDir,
				Conf:    conf,
				Store:   store,
				Debug:   c.Bool(debugFlag.Name),
			}
			return nil
		},
		After: func(c *urfave.Context) error {
			if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok && cfg.Store != nil {
				cfg.Store.Close()
			}
			return nil
		},
	}
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(logging.NewCLIHandler(os.Stderr, level)))
}

func encode(v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(os.Stdout).Encode(v)
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
