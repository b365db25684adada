package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"hierview/domain/core"
	"hierview/domain/hierarchy"

	"github.com/spf13/cobra"
)

func (c *CLI) newShowCmd() *cobra.Command {
	var (
		document bool
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Summarize the cached hierarchy document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.config.Validate(); err != nil {
				return err
			}

			root, err := c.store().Read(cmd.Context())
			if err != nil {
				return err
			}

			data, err := json.Marshal(root)
			if err != nil {
				return err
			}
			if document {
				_, err = fmt.Fprintln(c.out, string(data))
				return err
			}

			s := hierarchy.Summarize(root)
			fmt.Fprintf(c.out, "document:    %s\n", c.config.Data.CacheFile)
			fmt.Fprintf(c.out, "fingerprint: %s\n", core.NewHash(data))
			fmt.Fprintf(c.out, "top level:   %d\n", s.TopLevel)
			fmt.Fprintf(c.out, "nodes:       %d\n", s.Nodes)
			fmt.Fprintf(c.out, "leaves:      %d\n", s.Leaves)
			fmt.Fprintf(c.out, "max depth:   %d\n", s.MaxDepth)
			fmt.Fprintf(c.out, "fan-out:     mean %.2f, median %.1f, max %.0f\n", s.MeanFanOut, s.MedianFanOut, s.MaxFanOut)

			if maxDepth > 0 {
				fmt.Fprintln(c.out)
				printTree(c, root, 0, maxDepth)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&document, "document", false, "print the cached JSON document instead of a summary")
	cmd.Flags().IntVar(&maxDepth, "depth", 0, "also print the tree down to this depth")
	return cmd
}

func printTree(c *CLI, n *hierarchy.Node, depth, maxDepth int) {
	if depth >= maxDepth {
		return
	}
	for _, key := range n.Keys() {
		child, _ := n.Child(key)
		fmt.Fprintf(c.out, "%s%s\n", strings.Repeat("  ", depth), key)
		printTree(c, child, depth+1, maxDepth)
	}
}
