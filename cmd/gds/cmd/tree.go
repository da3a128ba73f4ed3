package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGDS/pkg/gds"
)

var treeCmd = &cobra.Command{
	Use:   "tree <file.gds>",
	Short: "Show the cell reference hierarchy",
	Long: `Show the cell reference hierarchy of a GDSII stream file, one
top-level cell per tree. Arrays are annotated with their column and row
counts; a cell already printed on the current branch is marked as a
cycle and not descended into again.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	layout, err := mustLayout(args[0])
	if err != nil {
		return err
	}

	for _, top := range layout.TopLevel() {
		printTree(top, "", "", make(map[*gds.Cell]bool))
	}
	return nil
}

func printTree(cell *gds.Cell, note, indent string, onBranch map[*gds.Cell]bool) {
	if onBranch[cell] {
		fmt.Printf("%s%s%s [cycle]\n", indent, cell.Name(), note)
		return
	}

	label := cell.Name() + note
	if n := len(cell.Objects()); n > 0 {
		label += fmt.Sprintf(" (%d elements)", n)
	}
	fmt.Println(indent + label)

	onBranch[cell] = true
	defer delete(onBranch, cell)

	for _, ref := range cell.References() {
		target := ref.Target()
		if target == nil {
			continue
		}
		childNote := ""
		if arr, ok := ref.(*gds.CellArray); ok {
			childNote = fmt.Sprintf(" [%dx%d]", arr.Cols, arr.Rows)
		}
		printTree(target, childNote, indent+"  ", onBranch)
	}
}
