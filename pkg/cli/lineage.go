package cli

import (
	"fmt"

	"github.com/mchmarny/trustmeter/pkg/treescore"
	"github.com/urfave/cli/v2"
)

var (
	lineageNameFlag = &cli.StringFlag{
		Name:     "name",
		Usage:    "Identifier of the artifact whose lineage is scored",
		Required: true,
	}

	lineageCmd = &cli.Command{
		Name:            "lineage",
		HideHelpCommand: true,
		Usage:           "Aggregate the known scores of an artifact's declared parents",
		Flags: []cli.Flag{
			lineageNameFlag,
			parentFlag,
		},
		Action: cmdLineage,
	}
)

func cmdLineage(c *cli.Context) error {
	lineage, err := parseLineage(c.StringSlice(parentFlag.Name))
	if err != nil {
		return err
	}
	if lineage == nil {
		return fmt.Errorf("at least one --%s is required", parentFlag.Name)
	}

	r := treescore.Compute(c.String(lineageNameFlag.Name), lineage.Parents, lineage.Scores)
	return encode(r)
}
