// Package btree implements the on-disk B+tree: typed byte-offset
// accessors over a pager.Page, search, insertion, leaf/internal split,
// root promotion, and in-order leaf traversal. Grounded on
// ShubhamNegi4-DaemonDB's bplustree package (find_leaf.go, insertion.go,
// split_internal.go, parent_insert.go, new_node.go, struct.go,
// iterator.go, inspect.go), generalized from that package's heap
// *Node/[][]byte representation down to spec.md's direct byte-offset
// accessors — there is no per-node Go object; the page buffer itself
// is the node, matching original_source/src/storage/bplus exactly.
package btree

import (
	"encoding/binary"

	"eggshell/internal/pager"
)

// Kind tags whether a page holds an internal or a leaf node. The
// numeric values match spec.md §3.3's common header table.
type Kind uint8

const (
	KindInternal Kind = 0
	KindLeaf     Kind = 1
)

// Common header: node type (1B) + is-root flag (1B) + parent page (4B).
const (
	nodeTypeOffset   = 0
	nodeTypeSize     = 1
	isRootOffset     = nodeTypeOffset + nodeTypeSize
	isRootSize       = 1
	parentOffset     = isRootOffset + isRootSize
	parentSize       = 4
	commonHeaderSize = parentOffset + parentSize // 6
)

// InvalidPageNum marks an uninitialized internal right child. It is
// distinct from page 0, which is always a valid page (the root).
const InvalidPageNum = ^uint32(0)

func nodeType(p *pager.Page) Kind {
	return Kind(p[nodeTypeOffset])
}

func setNodeType(p *pager.Page, kind Kind) {
	p[nodeTypeOffset] = byte(kind)
}

func isRoot(p *pager.Page) bool {
	return p[isRootOffset] != 0
}

func setIsRoot(p *pager.Page, root bool) {
	if root {
		p[isRootOffset] = 1
	} else {
		p[isRootOffset] = 0
	}
}

func parent(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p[parentOffset:])
}

func setParent(p *pager.Page, pageNum uint32) {
	binary.LittleEndian.PutUint32(p[parentOffset:], pageNum)
}
