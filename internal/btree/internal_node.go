package btree

import (
	"encoding/binary"

	"eggshell/internal/pager"
)

// Internal body layout (spec.md §3.3): numKeys(4) + rightChild(4) at
// offset 6, then cells of child(4)+key(4) starting at offset 14.
const (
	internalNumKeysOffset   = commonHeaderSize
	internalNumKeysSize     = 4
	internalRightChildOffset = internalNumKeysOffset + internalNumKeysSize
	internalRightChildSize  = 4
	internalHeaderSize      = internalRightChildOffset + internalRightChildSize // 14

	internalCellChildSize = 4
	internalCellKeySize   = 4
	internalCellSize      = internalCellChildSize + internalCellKeySize // 8

	// InternalMaxCells is deliberately small (per spec.md §3.3) to
	// stress splitting even with a handful of keys.
	InternalMaxCells = 3
)

func internalNumKeys(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p[internalNumKeysOffset:])
}

func setInternalNumKeys(p *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(p[internalNumKeysOffset:], n)
}

func internalRightChild(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p[internalRightChildOffset:])
}

func setInternalRightChild(p *pager.Page, pageNum uint32) {
	binary.LittleEndian.PutUint32(p[internalRightChildOffset:], pageNum)
}

func internalCellOffset(cellNum uint32) int {
	return internalHeaderSize + int(cellNum)*internalCellSize
}

func internalChildAt(p *pager.Page, cellNum uint32) uint32 {
	off := internalCellOffset(cellNum)
	return binary.LittleEndian.Uint32(p[off:])
}

func setInternalChildAt(p *pager.Page, cellNum uint32, pageNum uint32) {
	off := internalCellOffset(cellNum)
	binary.LittleEndian.PutUint32(p[off:], pageNum)
}

func internalKeyAt(p *pager.Page, cellNum uint32) uint32 {
	off := internalCellOffset(cellNum) + internalCellChildSize
	return binary.LittleEndian.Uint32(p[off:])
}

func setInternalKeyAt(p *pager.Page, cellNum uint32, key uint32) {
	off := internalCellOffset(cellNum) + internalCellChildSize
	binary.LittleEndian.PutUint32(p[off:], key)
}

func internalCellRange(p *pager.Page, cellNum uint32) []byte {
	off := internalCellOffset(cellNum)
	return p[off : off+internalCellSize]
}

// initInternal resets p to an empty, non-root internal node with an
// uninitialized right child.
func initInternal(p *pager.Page) {
	setNodeType(p, KindInternal)
	setIsRoot(p, false)
	setInternalNumKeys(p, 0)
	setInternalRightChild(p, InvalidPageNum)
}

// internalChild returns the childNum'th child of an internal node with
// k keys: children 0..k-1 come from cells, child k is the right child.
func internalChild(p *pager.Page, childNum uint32) (uint32, error) {
	numKeys := internalNumKeys(p)
	switch {
	case childNum > numKeys:
		return 0, fmtChildOutOfRange(childNum, numKeys)
	case childNum == numKeys:
		rc := internalRightChild(p)
		if rc == InvalidPageNum {
			return 0, errInvalidRightChild
		}
		return rc, nil
	default:
		c := internalChildAt(p, childNum)
		if c == InvalidPageNum {
			return 0, errInvalidRightChild
		}
		return c, nil
	}
}

// findChild returns the index of the child subtree that should
// contain key, without descending into it (spec.md §4.4.2).
func findChild(p *pager.Page, key uint32) uint32 {
	numKeys := internalNumKeys(p)
	lo, hi := uint32(0), numKeys
	for lo != hi {
		mid := (lo + hi) / 2
		if internalKeyAt(p, mid) >= key {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// updateInternalNodeKey rewrites the separator key that used to equal
// oldKey to newKey (spec.md §4.4.3).
func updateInternalNodeKey(p *pager.Page, oldKey, newKey uint32) {
	idx := findChild(p, oldKey)
	setInternalKeyAt(p, idx, newKey)
}
