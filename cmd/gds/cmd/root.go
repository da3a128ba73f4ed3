package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGDS/pkg/gds"
)

var (
	// Global flags
	verbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
)

var rootCmd = &cobra.Command{
	Use:   "gds",
	Short: "OpenTraceGDS - GDSII mask layout tools",
	Long: `OpenTraceGDS (gds) inspects and transforms GDSII stream files:
  - library and cell information
  - reference hierarchy
  - layer usage, optionally named through a layermap file
  - layer remapping

Examples:
  gds info design.gds                  # Show library info
  gds tree design.gds                  # Show the cell hierarchy
  gds layers design.gds --map tech.lm  # Show layers with names
  gds relayer in.gds out.gds --map remap.toml`,
	Version: "0.3.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cobra.OnInitialize(func() {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	})
}

// loadLayout reads a stream file and surfaces its collected warnings.
func loadLayout(path string) (*gds.Layout, error) {
	logger.Debug("loading stream file", "path", path)
	layout, err := gds.ReadFile(path)
	if err != nil {
		return nil, err
	}
	reportDiagnostics(layout.Diagnostics())
	return layout, nil
}

func reportDiagnostics(d *gds.Diagnostics) {
	for _, w := range d.Warnings() {
		logger.Warn(w)
	}
}
