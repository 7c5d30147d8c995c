// Package logging provides the single diagnostics logger used by the
// storage engine's internal layers (pager, btree, journal). It is
// never used for the REPL's protocol output — that is always written
// with plain fmt.Fprint* calls of the literal strings spec.md §6.3
// specifies.
package logging

import (
	"log/slog"
	"os"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// L returns the process-wide diagnostics logger, building it lazily on
// first use from a handler writing to stderr.
func L() *slog.Logger {
	once.Do(func() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	})
	return logger
}
