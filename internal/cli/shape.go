package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/docreel/docreel/pkg/mosaic"
)

// shapeCommand creates the shape command for probing the grid heuristic.
func (c *CLI) shapeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shape [page-count]",
		Short: "Print the mosaic grid shape for a page count (debug tool)",
		Long: `Print the grid shape the collate stage would choose for a page count.

The grid starts near A4 page proportions and alternates between adding a
row and adding a column until every page fits.`,
		Example: `  # Shape for a 17 page document
  docreel shape 17`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil || count < 0 {
				return fmt.Errorf("invalid page count %q", args[0])
			}

			shape, err := mosaic.SelectShape(count)
			if err != nil {
				return fmt.Errorf("select shape: %w", err)
			}

			printKeyValue("Pages", strconv.Itoa(count))
			printKeyValue("Grid", fmt.Sprintf("%d rows x %d cols", shape.Rows, shape.Cols))
			printKeyValue("Capacity", fmt.Sprintf("%d (%d cells unused)", shape.Capacity(), shape.Capacity()-count))
			return nil
		},
	}
}
