package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the hierarchy from the source spreadsheet and write the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.config.ValidateSource(); err != nil {
				return err
			}

			result, err := c.hierarchyService().Build(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			_, err = fmt.Fprintf(c.out, "Wrote %s: %d rows, %d nodes, %d leaves, depth %d\n",
				c.config.Data.CacheFile, result.Rows, result.Summary.Nodes, result.Summary.Leaves, result.Summary.MaxDepth)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the build result as JSON")
	return cmd
}
