package btree

import (
	"fmt"
	"io"
	"strings"

	"eggshell/internal/record"
)

// PrintConstants writes the fixed layout-size block `.constants` emits
// (SPEC_FULL.md §4.13), in the exact field order and wording
// original_source/src/compiler/metacmd/metacmd.cpp uses.
func PrintConstants(w io.Writer) {
	fmt.Fprintf(w, "ROW_SIZE: %d\n", record.Size)
	fmt.Fprintf(w, "COMMON_NODE_HEADER_SIZE: %d\n", commonHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_HEADER_SIZE: %d\n", leafHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_CELL_SIZE: %d\n", leafCellSize)
	fmt.Fprintf(w, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", leafSpaceForCells)
	fmt.Fprintf(w, "LEAF_NODE_MAX_CELLS: %d\n", LeafMaxCells)
}

// PrintTree writes an indented recursive dump of the tree rooted at
// pageNum (SPEC_FULL.md §4.13), matching metacmd.cpp's print_tree.
func (t *Table) PrintTree(w io.Writer, pageNum uint32, level uint32) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.printTree(w, pageNum, level)
}

func (t *Table) printTree(w io.Writer, pageNum uint32, level uint32) error {
	node, err := t.pgr.Get(pageNum)
	if err != nil {
		return err
	}

	switch nodeType(node) {
	case KindLeaf:
		numCells := leafNumCells(node)
		fmt.Fprintf(w, "%s- leaf (size %d)\n", indent(level), numCells)
		for i := uint32(0); i < numCells; i++ {
			fmt.Fprintf(w, "%s- %d\n", indent(level+1), leafKey(node, i))
		}
	case KindInternal:
		numKeys := internalNumKeys(node)
		fmt.Fprintf(w, "%s- internal (size %d)\n", indent(level), numKeys)
		for i := uint32(0); i < numKeys; i++ {
			child := internalChildAt(node, i)
			if err := t.printTree(w, child, level+1); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s- key %d\n", indent(level+1), internalKeyAt(node, i))
		}
		if numKeys > 0 {
			if err := t.printTree(w, internalRightChild(node), level+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func indent(level uint32) string {
	return strings.Repeat("  ", int(level))
}
