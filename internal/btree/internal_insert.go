package btree

import "eggshell/internal/logging"

// internalInsert adds a (key, child) cell to parent for childPageNum,
// or replaces its right child when childPageNum's max key exceeds the
// current right child's (spec.md §4.4.4). It delegates to a split once
// parent is already at InternalMaxCells.
func (t *Table) internalInsert(parentPageNum, childPageNum uint32) error {
	parent, err := t.pgr.Get(parentPageNum)
	if err != nil {
		return err
	}

	childMax, err := maxKey(t.pgr, childPageNum)
	if err != nil {
		return err
	}
	index := findChild(parent, childMax)

	numKeys := internalNumKeys(parent)
	if numKeys >= InternalMaxCells {
		return t.internalSplitAndInsert(parentPageNum, childPageNum)
	}

	rightChildPageNum := internalRightChild(parent)
	if rightChildPageNum == InvalidPageNum {
		setInternalRightChild(parent, childPageNum)
		return nil
	}

	rightChildMax, err := maxKey(t.pgr, rightChildPageNum)
	if err != nil {
		return err
	}

	setInternalNumKeys(parent, numKeys+1)

	if childMax > rightChildMax {
		setInternalChildAt(parent, numKeys, rightChildPageNum)
		setInternalKeyAt(parent, numKeys, rightChildMax)
		setInternalRightChild(parent, childPageNum)
	} else {
		for i := numKeys; i > index; i-- {
			copy(internalCellRange(parent, i), internalCellRange(parent, i-1))
		}
		setInternalChildAt(parent, index, childPageNum)
		setInternalKeyAt(parent, index, childMax)
	}
	return nil
}

// internalSplitAndInsert splits a full internal node into itself (left
// half) and a newly allocated right sibling, moving the upper half of
// its cells (plus its old right child) into the new node, then
// inserting childPageNum into whichever of the two subtrees it belongs
// to, and finally propagating the split to the grandparent (spec.md
// §4.4.5).
func (t *Table) internalSplitAndInsert(parentPageNum, childPageNum uint32) error {
	oldPageNum := parentPageNum
	oldNode, err := t.pgr.Get(oldPageNum)
	if err != nil {
		return err
	}
	oldMax, err := maxKey(t.pgr, oldPageNum)
	if err != nil {
		return err
	}

	child, err := t.pgr.Get(childPageNum)
	if err != nil {
		return err
	}
	childMax, err := maxKey(t.pgr, childPageNum)
	if err != nil {
		return err
	}

	newPageNum := t.pgr.GetUnusedPageNum()
	logging.L().Debug("btree: internal split", "old_page", oldPageNum, "new_page", newPageNum)

	splittingRoot := isRoot(oldNode)

	if splittingRoot {
		logging.L().Warn("btree: root split, tree grew a level", "new_root_child", newPageNum)
		if err := t.createNewRoot(newPageNum); err != nil {
			return err
		}
		root, err := t.pgr.Get(RootPageNum)
		if err != nil {
			return err
		}
		oldPageNum, err = internalChild(root, 0)
		if err != nil {
			return err
		}
		oldNode, err = t.pgr.Get(oldPageNum)
		if err != nil {
			return err
		}
	} else {
		newNode, err := t.pgr.Get(newPageNum)
		if err != nil {
			return err
		}
		initInternal(newNode)
		setParent(newNode, parent(oldNode))
	}
	t.journalBeforeOverwrite(oldPageNum, oldNode)

	curPageNum := internalRightChild(oldNode)
	cur, err := t.pgr.Get(curPageNum)
	if err != nil {
		return err
	}
	if err := t.internalInsert(newPageNum, curPageNum); err != nil {
		return err
	}
	setParent(cur, newPageNum)
	setInternalRightChild(oldNode, InvalidPageNum)

	for i := int32(InternalMaxCells - 1); i > InternalMaxCells/2; i-- {
		curPageNum = internalChildAt(oldNode, uint32(i))
		cur, err = t.pgr.Get(curPageNum)
		if err != nil {
			return err
		}
		if err := t.internalInsert(newPageNum, curPageNum); err != nil {
			return err
		}
		setParent(cur, newPageNum)
		setInternalNumKeys(oldNode, internalNumKeys(oldNode)-1)
	}

	lastChild, err := internalChild(oldNode, internalNumKeys(oldNode)-1)
	if err != nil {
		return err
	}
	setInternalRightChild(oldNode, lastChild)
	setInternalNumKeys(oldNode, internalNumKeys(oldNode)-1)

	maxAfterSplit, err := maxKey(t.pgr, oldPageNum)
	if err != nil {
		return err
	}

	destinationPageNum := newPageNum
	if childMax < maxAfterSplit {
		destinationPageNum = oldPageNum
	}
	if err := t.internalInsert(destinationPageNum, childPageNum); err != nil {
		return err
	}
	setParent(child, destinationPageNum)

	parentPageNumAfter := parent(oldNode)
	parentAfter, err := t.pgr.Get(parentPageNumAfter)
	if err != nil {
		return err
	}
	newMax, err := maxKey(t.pgr, oldPageNum)
	if err != nil {
		return err
	}
	updateInternalNodeKey(parentAfter, oldMax, newMax)

	if !splittingRoot {
		newNode, err := t.pgr.Get(newPageNum)
		if err != nil {
			return err
		}
		if err := t.internalInsert(parent(oldNode), newPageNum); err != nil {
			return err
		}
		setParent(newNode, parent(oldNode))
	}
	return nil
}
