package btree

import (
	"eggshell/internal/logging"
	"eggshell/internal/pager"
)

// leafInsert places (key, payload) at cursor, shifting higher cells
// right by one, or delegates to a split when the leaf is already full
// (spec.md §4.3.2).
func (t *Table) leafInsert(cursor *Cursor, key uint32, payload []byte) error {
	leaf, err := t.pgr.Get(cursor.PageNum)
	if err != nil {
		return err
	}

	numCells := leafNumCells(leaf)
	if numCells >= LeafMaxCells {
		return t.leafSplitAndInsert(cursor, key, payload)
	}

	for i := numCells; i > cursor.CellNum; i-- {
		copy(leafCellRange(leaf, i), leafCellRange(leaf, i-1))
	}
	setLeafKey(leaf, cursor.CellNum, key)
	copy(leafValue(leaf, cursor.CellNum), payload)
	setLeafNumCells(leaf, numCells+1)
	return nil
}

// leafSplitAndInsert splits a full leaf into itself (left half) and a
// newly allocated right sibling, inserting (key, payload) into whichever
// half it belongs in, then propagates the split upward (spec.md
// §4.3.3). rightCount = ceil((LeafMaxCells+1)/2), leftCount the rest.
func (t *Table) leafSplitAndInsert(cursor *Cursor, key uint32, payload []byte) error {
	oldPageNum := cursor.PageNum
	oldLeaf, err := t.pgr.Get(oldPageNum)
	if err != nil {
		return err
	}
	oldMax := leafMaxKey(oldLeaf)
	t.journalBeforeOverwrite(oldPageNum, oldLeaf)

	newPageNum := t.pgr.GetUnusedPageNum()
	logging.L().Debug("btree: leaf split", "old_page", oldPageNum, "new_page", newPageNum)
	newLeaf, err := t.pgr.Get(newPageNum)
	if err != nil {
		return err
	}
	initLeaf(newLeaf)
	setParent(newLeaf, parent(oldLeaf))
	setLeafNextLeaf(newLeaf, leafNextLeaf(oldLeaf))
	setLeafNextLeaf(oldLeaf, newPageNum)

	const total = LeafMaxCells + 1
	rightCount := uint32((total + 1) / 2)
	leftCount := uint32(total) - rightCount

	for i := int32(LeafMaxCells); i >= 0; i-- {
		idx := uint32(i)

		var dest *pager.Page
		var destIndex uint32
		if idx >= leftCount {
			dest = newLeaf
			destIndex = idx - leftCount
		} else {
			dest = oldLeaf
			destIndex = idx
		}

		switch {
		case idx == cursor.CellNum:
			setLeafKey(dest, destIndex, key)
			copy(leafValue(dest, destIndex), payload)
		case idx > cursor.CellNum:
			copy(leafCellRange(dest, destIndex), leafCellRange(oldLeaf, idx-1))
		default:
			copy(leafCellRange(dest, destIndex), leafCellRange(oldLeaf, idx))
		}
	}

	setLeafNumCells(oldLeaf, leftCount)
	setLeafNumCells(newLeaf, rightCount)

	if isRoot(oldLeaf) {
		logging.L().Warn("btree: root split, tree grew a level", "new_root_child", newPageNum)
		return t.createNewRoot(newPageNum)
	}

	parentPageNum := parent(oldLeaf)
	parentPage, err := t.pgr.Get(parentPageNum)
	if err != nil {
		return err
	}
	updateInternalNodeKey(parentPage, oldMax, leafMaxKey(oldLeaf))
	return t.internalInsert(parentPageNum, newPageNum)
}
