package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var cacheCmd = &cli.Command{
	Name:            "cache",
	HideHelpCommand: true,
	Usage:           "Manage the local rating cache",
	Subcommands: []*cli.Command{
		{
			Name:   "clear",
			Usage:  "Delete all cached ratings",
			Action: cmdCacheClear,
		},
	},
}

func cmdCacheClear(c *cli.Context) error {
	cfg := getConfig(c)
	if err := cfg.Store.Clear(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	fmt.Println("Cache cleared")
	return nil
}
