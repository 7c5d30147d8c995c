package btree

import "eggshell/internal/pager"

// maxKey returns the maximum key stored under pageNum, descending via
// right children until it reaches a leaf. This is the pager-aware
// form spec.md §4.2 requires for propagating a post-split maximum up
// the tree; leafMaxKey (header.go's sibling in leaf.go) is the
// buffer-only form used once the caller already holds a leaf buffer.
func maxKey(pgr *pager.Pager, pageNum uint32) (uint32, error) {
	p, err := pgr.Get(pageNum)
	if err != nil {
		return 0, err
	}
	if nodeType(p) == KindLeaf {
		return leafMaxKey(p), nil
	}
	rc := internalRightChild(p)
	if rc == InvalidPageNum {
		return 0, errInvalidRightChild
	}
	return maxKey(pgr, rc)
}
