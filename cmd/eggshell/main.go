// Command eggshell is the interactive REPL entrypoint (SPEC_FULL.md
// §4.11), wired with cobra the way NutellaDB-NutellaDB/dbcli wires its
// own single-root-command administrative CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eggshell/internal/btree"
	"eggshell/internal/journal"
	"eggshell/internal/logging"
	"eggshell/internal/repl"
)

var (
	constantsOnly bool
	journalDir    string
)

var rootCmd = &cobra.Command{
	Use:   "eggshell <path-to-db-file>",
	Short: "A disk-backed B+tree key-value store with an interactive prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := btree.Options{}
		if journalDir != "" {
			j, err := journal.Open(journalDir)
			if err != nil {
				return fmt.Errorf("eggshell: %w", err)
			}
			defer j.Close()
			opts.Journal = j
		}

		table, err := btree.Open(args[0], opts)
		if err != nil {
			return fmt.Errorf("eggshell: %w", err)
		}
		defer table.Close()

		if constantsOnly {
			btree.PrintConstants(os.Stdout)
			return nil
		}

		return repl.Run(os.Stdin, os.Stdout, table)
	},
}

func main() {
	rootCmd.Flags().BoolVar(&constantsOnly, "constants", false, "print layout constants and exit")
	rootCmd.Flags().StringVar(&journalDir, "journal-dir", "", "directory for the optional pre-image journal (disabled if empty)")

	if err := rootCmd.Execute(); err != nil {
		logging.L().Error("eggshell: fatal", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
