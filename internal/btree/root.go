package btree

// createNewRoot reinitializes page 0 in place as a fresh internal node
// with two children: a newly allocated left page holding everything
// the old root used to hold, and rightChildPageNum as the right child
// (spec.md §4.5). The logical root page number never changes.
func (t *Table) createNewRoot(rightChildPageNum uint32) error {
	root, err := t.pgr.Get(RootPageNum)
	if err != nil {
		return err
	}
	right, err := t.pgr.Get(rightChildPageNum)
	if err != nil {
		return err
	}

	rootWasInternal := nodeType(root) == KindInternal

	leftPageNum := t.pgr.GetUnusedPageNum()
	left, err := t.pgr.Get(leftPageNum)
	if err != nil {
		return err
	}

	if rootWasInternal {
		initInternal(right)
		initInternal(left)
	}

	*left = *root
	setIsRoot(left, false)

	if nodeType(left) == KindInternal {
		numKeys := internalNumKeys(left)
		for i := uint32(0); i < numKeys; i++ {
			child, err := t.pgr.Get(internalChildAt(left, i))
			if err != nil {
				return err
			}
			setParent(child, leftPageNum)
		}
		rc, err := internalChild(left, numKeys)
		if err != nil {
			return err
		}
		rcPage, err := t.pgr.Get(rc)
		if err != nil {
			return err
		}
		setParent(rcPage, leftPageNum)
	}

	initInternal(root)
	setIsRoot(root, true)
	setInternalNumKeys(root, 1)
	setInternalChildAt(root, 0, leftPageNum)

	leftMax, err := maxKey(t.pgr, leftPageNum)
	if err != nil {
		return err
	}
	setInternalKeyAt(root, 0, leftMax)
	setInternalRightChild(root, rightChildPageNum)

	setParent(left, RootPageNum)
	setParent(right, RootPageNum)
	return nil
}
