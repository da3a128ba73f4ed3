package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGDS/pkg/gds"
)

var relayerMapFile string

// remapConfig is the TOML schema of a relayer mapping file:
//
//	[[remap]]
//	from = [1, 2]
//	to = 10
//
//	[[remap]]
//	from = [7]
//	to = 3
type remapConfig struct {
	Remap []remapRule `toml:"remap"`
}

type remapRule struct {
	From []int `toml:"from"`
	To   int   `toml:"to"`
}

var relayerCmd = &cobra.Command{
	Use:   "relayer <in.gds> <out.gds>",
	Short: "Rewrite layer numbers through the whole hierarchy",
	Long: `Rewrite layer numbers through the whole cell hierarchy of a GDSII
stream file and write the result to a new file. The mapping is given as
a TOML file of [[remap]] rules, each moving a set of source layers to
one target layer. Rules are applied simultaneously: a layer moved by one
rule is not picked up again by another.`,
	Args: cobra.ExactArgs(2),
	RunE: runRelayer,
}

func init() {
	relayerCmd.Flags().StringVarP(&relayerMapFile, "map", "m", "", "TOML mapping file (required)")
	relayerCmd.MarkFlagRequired("map")
	rootCmd.AddCommand(relayerCmd)
}

func runRelayer(cmd *cobra.Command, args []string) error {
	mapping, err := loadRemap(relayerMapFile)
	if err != nil {
		return err
	}

	layout, err := mustLayout(args[0])
	if err != nil {
		return err
	}

	moved := 0
	for _, cell := range layout.Dependencies() {
		for _, obj := range cell.Objects() {
			moved += remapElement(obj, mapping)
		}
	}
	logger.Info("relayered", "elements", moved, "rules", len(mapping))

	if err := layout.SaveFile(args[1]); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[1], err)
	}
	reportDiagnostics(layout.Diagnostics())
	return nil
}

// loadRemap flattens the rule list into a single source-to-target table
// so that all rules apply in one pass.
func loadRemap(path string) (map[int]int, error) {
	var cfg remapConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read mapping %s: %w", path, err)
	}
	if len(cfg.Remap) == 0 {
		return nil, fmt.Errorf("mapping %s has no [[remap]] rules", path)
	}

	mapping := make(map[int]int)
	for _, rule := range cfg.Remap {
		for _, from := range rule.From {
			if to, dup := mapping[from]; dup && to != rule.To {
				return nil, fmt.Errorf("layer %d is remapped twice, to %d and %d", from, to, rule.To)
			}
			mapping[from] = rule.To
		}
	}
	return mapping, nil
}

func remapElement(e gds.Element, mapping map[int]int) int {
	if group, ok := e.(*gds.Elements); ok {
		moved := 0
		for _, m := range group.Members() {
			moved += remapElement(m, mapping)
		}
		return moved
	}
	if to, ok := mapping[e.Layer()]; ok && to != e.Layer() {
		e.SetLayer(to)
		return 1
	}
	return 0
}
