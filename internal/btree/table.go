package btree

import (
	"sync"

	"eggshell/internal/logging"
	"eggshell/internal/pager"
	"eggshell/internal/record"
)

// RootPageNum is always 0 (spec.md §3.4 invariant 1): page 0 is
// created once when the database is opened and never moves. A root
// split reinitializes page 0 in place as the new internal root; it
// never relocates the logical root to a different page number.
const RootPageNum uint32 = 0

// Table binds a pager to its (fixed) root page and exposes the
// point-lookup/insert/scan operations the REPL drives.
//
// mu is the optional "one exclusive writer, many shared readers"
// outer envelope spec.md §5 permits but does not require — grounded
// on the teacher's BPlusTree.mu, which guards the same single-process
// structure for the same reason. The tree algorithms themselves
// assume single-writer access and do not lock internally.
type Table struct {
	mu   sync.RWMutex
	pgr  *pager.Pager
	opts Options
}

// Options configures optional, non-core behavior (the sidecar
// journal). The zero value disables all of them.
type Options struct {
	// Journal, if non-nil, receives the pre-image of the page being
	// split at the start of every leaf or internal split; other page
	// writes are not journaled. See internal/journal and SPEC_FULL.md
	// §4.12.
	Journal interface {
		Record(pageNum uint32, before []byte) error
	}
}

// Open opens path (creating it if absent) and, for a fresh database,
// initializes page 0 as an empty leaf root.
func Open(path string, opts Options) (*Table, error) {
	pgr, err := pager.Open(path)
	if err != nil {
		return nil, err
	}

	t := &Table{pgr: pgr, opts: opts}

	if pgr.NumPages() == 0 {
		root, err := pgr.Get(RootPageNum)
		if err != nil {
			return nil, err
		}
		initLeaf(root)
		setIsRoot(root, true)
	}
	return t, nil
}

// Close flushes every resident page and closes the file.
func (t *Table) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pgr.Close()
}

// Find locates the leaf cell where key belongs: the match if key is
// present, otherwise the insertion point (spec.md §4.6).
func (t *Table) Find(key uint32) (*Cursor, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.find(key)
}

func (t *Table) find(key uint32) (*Cursor, error) {
	root, err := t.pgr.Get(RootPageNum)
	if err != nil {
		return nil, err
	}
	if nodeType(root) == KindLeaf {
		cellNum := leafFind(root, key)
		return &Cursor{table: t, PageNum: RootPageNum, CellNum: cellNum}, nil
	}
	return t.internalFind(RootPageNum, key)
}

func (t *Table) internalFind(pageNum uint32, key uint32) (*Cursor, error) {
	node, err := t.pgr.Get(pageNum)
	if err != nil {
		return nil, err
	}
	idx := findChild(node, key)
	childNum, err := internalChild(node, idx)
	if err != nil {
		return nil, err
	}
	child, err := t.pgr.Get(childNum)
	if err != nil {
		return nil, err
	}
	if nodeType(child) == KindLeaf {
		cellNum := leafFind(child, key)
		return &Cursor{table: t, PageNum: childNum, CellNum: cellNum}, nil
	}
	return t.internalFind(childNum, key)
}

// Start returns a cursor positioned at the first row in key order.
// find(0) always lands on the leftmost leaf, because every binary
// search step in internalFind picks the smallest child whose
// separator key is >= the search key (spec.md §4.6).
func (t *Table) Start() (*Cursor, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cursor, err := t.find(0)
	if err != nil {
		return nil, err
	}
	leaf, err := t.pgr.Get(cursor.PageNum)
	if err != nil {
		return nil, err
	}
	cursor.EndOfTable = leafNumCells(leaf) == 0
	return cursor, nil
}

// Insert adds row under key row.ID, rejecting duplicates without
// mutating the tree (spec.md §4.8).
func (t *Table) Insert(row record.Row) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := row.Validate(); err != nil {
		return err
	}

	cursor, err := t.find(row.ID)
	if err != nil {
		return err
	}

	leaf, err := t.pgr.Get(cursor.PageNum)
	if err != nil {
		return err
	}
	numCells := leafNumCells(leaf)
	if cursor.CellNum < numCells && leafKey(leaf, cursor.CellNum) == row.ID {
		return ErrDuplicateKey
	}

	var payload [record.Size]byte
	record.Encode(row, payload[:])
	return t.leafInsert(cursor, row.ID, payload[:])
}

// journalBeforeOverwrite records page's current contents through the
// optional journal before it is mutated in place, if one is attached.
func (t *Table) journalBeforeOverwrite(pageNum uint32, page *pager.Page) {
	if t.opts.Journal == nil {
		return
	}
	if err := t.opts.Journal.Record(pageNum, page[:]); err != nil {
		// The journal is a diagnostic aid, not a recovery mechanism
		// (SPEC_FULL.md §4.12) — a failure to journal never blocks a
		// mutation, it is only logged.
		logging.L().Warn("journal: failed to record pre-image", "page", pageNum, "err", err)
	}
}
