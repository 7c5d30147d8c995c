// Package repl implements the line-oriented prompt spec.md §6.3
// describes as a trivial external collaborator: meta-commands, insert
// and select statements, and literal result reporting. None of this
// package's output is ever routed through the diagnostics logger
// (internal/logging) — it is a fixed protocol, not a log stream.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"eggshell/internal/btree"
)

const prompt = "db > "

// Run reads lines from r until `.exit`, EOF, or a fatal engine error,
// writing every result to w. It returns nil on a clean `.exit` or EOF,
// and a non-nil error only for the fatal layout/I/O class spec.md §7
// describes — a caller should log that and exit non-zero.
func Run(r io.Reader, w io.Writer, t *btree.Table) error {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var err error
		if strings.HasPrefix(line, ".") {
			err = doMetaCommand(line, t, w)
			if errors.Is(err, metaCommandExit) {
				return nil
			}
		} else {
			var stmt statement
			stmt, err = prepareStatement(line)
			if err == nil {
				err = executeStatement(t, w, stmt)
			}
		}

		if err == nil {
			continue
		}
		if isProtocolError(err) {
			fmt.Fprintln(w, err.Error())
			continue
		}
		return err
	}
}
