package btree

import (
	"encoding/binary"

	"eggshell/internal/pager"
	"eggshell/internal/record"
)

// Leaf body layout (spec.md §3.3): numCells(4) + nextLeaf(4) at offset
// 6, then cells of key(4)+row(record.Size) starting at offset 14.
const (
	leafNumCellsOffset = commonHeaderSize
	leafNumCellsSize   = 4
	leafNextLeafOffset = leafNumCellsOffset + leafNumCellsSize
	leafNextLeafSize   = 4
	leafHeaderSize     = leafNextLeafOffset + leafNextLeafSize // 14

	leafCellKeySize = 4
	leafCellSize    = leafCellKeySize + record.Size // 297

	leafSpaceForCells = pager.PageSize - leafHeaderSize
	// LeafMaxCells is the maximum number of (key, row) cells a leaf
	// page can hold.
	LeafMaxCells = leafSpaceForCells / leafCellSize
)

func leafNumCells(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p[leafNumCellsOffset:])
}

func setLeafNumCells(p *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(p[leafNumCellsOffset:], n)
}

func leafNextLeaf(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p[leafNextLeafOffset:])
}

func setLeafNextLeaf(p *pager.Page, pageNum uint32) {
	binary.LittleEndian.PutUint32(p[leafNextLeafOffset:], pageNum)
}

func leafCellOffset(cellNum uint32) int {
	return leafHeaderSize + int(cellNum)*leafCellSize
}

func leafKey(p *pager.Page, cellNum uint32) uint32 {
	off := leafCellOffset(cellNum)
	return binary.LittleEndian.Uint32(p[off:])
}

func setLeafKey(p *pager.Page, cellNum uint32, key uint32) {
	off := leafCellOffset(cellNum)
	binary.LittleEndian.PutUint32(p[off:], key)
}

// leafValue returns the byte range holding the serialized row for
// cellNum. The slice aliases the page buffer directly.
func leafValue(p *pager.Page, cellNum uint32) []byte {
	off := leafCellOffset(cellNum) + leafCellKeySize
	return p[off : off+record.Size]
}

// leafCellRange returns the full key+row byte range for cellNum, used
// when shifting whole cells during insert/split.
func leafCellRange(p *pager.Page, cellNum uint32) []byte {
	off := leafCellOffset(cellNum)
	return p[off : off+leafCellSize]
}

// initLeaf resets p to an empty, non-root leaf with no next sibling.
func initLeaf(p *pager.Page) {
	setNodeType(p, KindLeaf)
	setIsRoot(p, false)
	setLeafNumCells(p, 0)
	setLeafNextLeaf(p, 0)
}

// leafMaxKey returns a leaf's maximum key directly from its buffer
// (spec.md §4.2's "buffer-only form").
func leafMaxKey(p *pager.Page) uint32 {
	n := leafNumCells(p)
	return leafKey(p, n-1)
}

// leafFind performs a binary search over a leaf's keys. It always
// returns a cell index: on exact match, the matching index; otherwise
// the lower bound (spec.md §4.3.1).
func leafFind(p *pager.Page, key uint32) uint32 {
	numCells := leafNumCells(p)
	lo, hi := uint32(0), numCells
	for lo != hi {
		mid := (lo + hi) / 2
		midKey := leafKey(p, mid)
		if midKey == key {
			return mid
		}
		if midKey > key {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
