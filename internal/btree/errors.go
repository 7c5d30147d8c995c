package btree

import "fmt"

// errInvalidRightChild and fmtChildOutOfRange surface spec.md §7's
// layout/corruption error class: dereferencing InvalidPageNum or a
// child index beyond num_keys. Both are fatal to the engine
// invocation — callers propagate them up to the REPL, which logs and
// exits rather than attempting repair.
var errInvalidRightChild = fmt.Errorf("btree: tried to access an uninitialized right child")

func fmtChildOutOfRange(childNum, numKeys uint32) error {
	return fmt.Errorf("btree: child index %d > num_keys %d", childNum, numKeys)
}

// ErrDuplicateKey is returned by Table.Insert when the key already
// exists. It is an input error (spec.md §7), not fatal: the REPL
// reports it and returns to the prompt without mutating state.
var ErrDuplicateKey = fmt.Errorf("duplicate key")
