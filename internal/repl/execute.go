package repl

import (
	"errors"
	"fmt"
	"io"

	"eggshell/internal/btree"
	"eggshell/internal/record"
)

// executeStatement runs a prepared statement against t and writes its
// result line(s) to w (spec.md §4.8/§4.9).
func executeStatement(t *btree.Table, w io.Writer, stmt statement) error {
	switch stmt.kind {
	case stmtInsert:
		if err := t.Insert(stmt.row); err != nil {
			if errors.Is(err, btree.ErrDuplicateKey) {
				return errDuplicateKey
			}
			return err
		}
		fmt.Fprintln(w, "Executed.")
		return nil
	case stmtSelect:
		return executeSelect(t, w)
	default:
		return errSyntax
	}
}

func executeSelect(t *btree.Table, w io.Writer) error {
	cursor, err := t.Start()
	if err != nil {
		return err
	}
	for !cursor.EndOfTable {
		val, err := cursor.Value()
		if err != nil {
			return err
		}
		row := record.Decode(val)
		fmt.Fprintf(w, "(%d, %s, %s)\n", row.ID, row.Username, row.Email)
		if err := cursor.Advance(); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, "Executed.")
	return nil
}

// metaCommandExit signals the REPL loop should terminate cleanly.
var metaCommandExit = errors.New("repl: exit")

// doMetaCommand handles the three `.`-prefixed commands spec.md §6.3
// defines (SPEC_FULL.md §4.13 for the exact `.constants`/`.btree`
// text).
func doMetaCommand(input string, t *btree.Table, w io.Writer) error {
	switch input {
	case ".exit":
		return metaCommandExit
	case ".constants":
		btree.PrintConstants(w)
		return nil
	case ".btree":
		fmt.Fprintln(w, "Tree:")
		return t.PrintTree(w, btree.RootPageNum, 0)
	default:
		return unrecognizedCommandError{input: input}
	}
}
