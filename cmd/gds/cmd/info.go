package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGDS/pkg/gds"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.gds>",
	Short: "Show library information for a GDSII stream file",
	Long: `Show library information for a GDSII stream file: name, units,
top-level cells and overall extent.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	layout, err := mustLayout(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Library:   %s\n", layout.Name)
	fmt.Printf("Unit:      %g m\n", layout.Unit)
	fmt.Printf("Precision: %g m\n", layout.Precision)

	cells := layout.Dependencies()
	elements, references := 0, 0
	for _, c := range cells {
		elements += len(c.Objects())
		references += len(c.References())
	}
	fmt.Printf("Cells:     %d (%d elements, %d references)\n", len(cells), elements, references)

	fmt.Println("Top-level cells:")
	for _, c := range layout.TopLevel() {
		if box := c.BoundingBox(); box != nil {
			fmt.Printf("  %-24s %g x %g at (%g, %g)\n",
				c.Name(), box.Width(), box.Height(), box.Min.X, box.Min.Y)
		} else {
			fmt.Printf("  %-24s (empty)\n", c.Name())
		}
	}

	if box := layout.BoundingBox(); box != nil {
		fmt.Printf("Extent:    (%g, %g) to (%g, %g)\n",
			box.Min.X, box.Min.Y, box.Max.X, box.Max.Y)
	}
	return nil
}

// mustLayout is a helper shared by subcommands that take a single
// stream-file argument.
func mustLayout(path string) (*gds.Layout, error) {
	layout, err := loadLayout(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return layout, nil
}
