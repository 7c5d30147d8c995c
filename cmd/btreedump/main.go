// Command btreedump opens a database file (via the same read/write
// pager Open always uses — it never mutates a page, but nothing
// downgrades the file handle to O_RDONLY) and prints the same indented
// tree dump `.btree` does, without a REPL loop (SPEC_FULL.md §4.11).
// Grounded on ShubhamNegi4-DaemonDB's bplustree/inspect.go, a small
// standalone tree-printing tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eggshell/internal/btree"
	"eggshell/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "btreedump <path-to-db-file>",
	Short: "Print a B+tree's page structure without opening a REPL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := btree.Open(args[0], btree.Options{})
		if err != nil {
			return fmt.Errorf("btreedump: %w", err)
		}
		defer table.Close()

		fmt.Println("Tree:")
		return table.PrintTree(os.Stdout, btree.RootPageNum, 0)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.L().Error("btreedump: fatal", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
