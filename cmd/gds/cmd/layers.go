package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGDS/pkg/layermap"
)

var layersMapFile string

var layersCmd = &cobra.Command{
	Use:   "layers <file.gds>",
	Short: "List the layers used in a GDSII stream file",
	Long: `List every layer drawn on anywhere in a GDSII stream file. With
--map, layers are annotated with their names from a layermap file.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayers,
}

func init() {
	layersCmd.Flags().StringVarP(&layersMapFile, "map", "m", "", "layermap file with layer names")
	rootCmd.AddCommand(layersCmd)
}

func runLayers(cmd *cobra.Command, args []string) error {
	layout, err := mustLayout(args[0])
	if err != nil {
		return err
	}

	var names *layermap.Map
	if layersMapFile != "" {
		parser, err := layermap.NewParser()
		if err != nil {
			return err
		}
		names, err = parser.ParseFile(layersMapFile)
		if err != nil {
			return fmt.Errorf("failed to read layermap %s: %w", layersMapFile, err)
		}
	}

	seen := make(map[int]bool)
	var layers []int
	for _, c := range layout.Dependencies() {
		for _, l := range c.Layers() {
			if !seen[l] {
				seen[l] = true
				layers = append(layers, l)
			}
		}
	}
	sort.Ints(layers)

	for _, l := range layers {
		if names != nil {
			if name := names.NameForLayer(l); name != "" {
				fmt.Printf("%3d  %s\n", l, name)
				continue
			}
		}
		fmt.Printf("%3d\n", l)
	}
	return nil
}
