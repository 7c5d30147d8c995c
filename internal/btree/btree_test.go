package btree

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"eggshell/internal/record"
)

func newTestTable(t *testing.T) *Table {
	path := filepath.Join(t.TempDir(), "test.db")
	tbl, err := Open(path, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { tbl.Close() })
	return tbl
}

func insertRow(t *testing.T, tbl *Table, id uint32) {
	t.Helper()
	row := record.Row{ID: id, Username: fmt.Sprintf("u%d", id), Email: fmt.Sprintf("u%d@example.com", id)}
	require.NoError(t, tbl.Insert(row))
}

func scanKeys(t *testing.T, tbl *Table) []uint32 {
	t.Helper()
	cursor, err := tbl.Start()
	require.NoError(t, err)

	var keys []uint32
	for !cursor.EndOfTable {
		val, err := cursor.Value()
		require.NoError(t, err)
		keys = append(keys, record.Decode(val).ID)
		require.NoError(t, cursor.Advance())
	}
	return keys
}

func TestOrderingAscendingRegardlessOfInsertOrder(t *testing.T) {
	orders := map[string][]uint32{
		"ascending":  {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		"descending": {15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
	}
	shuffled := make([]uint32, 15)
	for i := range shuffled {
		shuffled[i] = uint32(i + 1)
	}
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	orders["random"] = shuffled

	for name, ids := range orders {
		t.Run(name, func(t *testing.T) {
			tbl := newTestTable(t)
			for _, id := range ids {
				insertRow(t, tbl, id)
			}
			keys := scanKeys(t, tbl)
			require.Len(t, keys, 15)
			for i := 1; i < len(keys); i++ {
				require.Less(t, keys[i-1], keys[i])
			}
		})
	}
}

func TestDuplicateRejectionLeavesTreeUnchanged(t *testing.T) {
	tbl := newTestTable(t)
	insertRow(t, tbl, 1)
	before := scanKeys(t, tbl)

	row := record.Row{ID: 1, Username: "dup", Email: "dup@example.com"}
	err := tbl.Insert(row)
	require.ErrorIs(t, err, ErrDuplicateKey)

	after := scanKeys(t, tbl)
	require.Equal(t, before, after)
}

func TestLeafStaysSingleUntilOverflow(t *testing.T) {
	tbl := newTestTable(t)
	for id := uint32(1); id <= LeafMaxCells; id++ {
		insertRow(t, tbl, id)
	}
	root, err := tbl.pgr.Get(RootPageNum)
	require.NoError(t, err)
	require.Equal(t, KindLeaf, nodeType(root))
	require.EqualValues(t, LeafMaxCells, leafNumCells(root))
}

func TestFirstLeafSplitPromotesRoot(t *testing.T) {
	tbl := newTestTable(t)
	for id := uint32(1); id <= LeafMaxCells+1; id++ {
		insertRow(t, tbl, id)
	}

	root, err := tbl.pgr.Get(RootPageNum)
	require.NoError(t, err)
	require.Equal(t, KindInternal, nodeType(root))
	require.EqualValues(t, 1, internalNumKeys(root))
	require.EqualValues(t, 7, internalKeyAt(root, 0))

	rightChildNum := internalRightChild(root)
	rightChild, err := tbl.pgr.Get(rightChildNum)
	require.NoError(t, err)
	require.Equal(t, KindLeaf, nodeType(rightChild))
	require.EqualValues(t, 7, leafNumCells(rightChild))

	keys := scanKeys(t, tbl)
	require.Len(t, keys, int(LeafMaxCells+1))
	for i := 1; i < len(keys); i++ {
		require.Less(t, keys[i-1], keys[i])
	}
}

func TestInternalSplitOnManyInserts(t *testing.T) {
	tbl := newTestTable(t)
	const n = 200
	for id := uint32(1); id <= n; id++ {
		insertRow(t, tbl, id)
	}

	keys := scanKeys(t, tbl)
	require.Len(t, keys, n)
	for i := 1; i < len(keys); i++ {
		require.Less(t, keys[i-1], keys[i])
	}

	root, err := tbl.pgr.Get(RootPageNum)
	require.NoError(t, err)
	require.True(t, isRoot(root))

	// Separator consistency and parent linkage over every resident page.
	for pageNum := uint32(0); pageNum < tbl.pgr.NumPages(); pageNum++ {
		node, err := tbl.pgr.Get(pageNum)
		require.NoError(t, err)
		if nodeType(node) != KindInternal {
			continue
		}
		numKeys := internalNumKeys(node)
		for i := uint32(0); i < numKeys; i++ {
			childNum := internalChildAt(node, i)
			child, err := tbl.pgr.Get(childNum)
			require.NoError(t, err)
			require.Equal(t, pageNum, parent(child))

			childMax, err := maxKey(tbl.pgr, childNum)
			require.NoError(t, err)
			require.Equal(t, internalKeyAt(node, i), childMax)
		}
		if numKeys > 0 {
			rc := internalRightChild(node)
			rcPage, err := tbl.pgr.Get(rc)
			require.NoError(t, err)
			require.Equal(t, pageNum, parent(rcPage))

			rcMax, err := maxKey(tbl.pgr, rc)
			require.NoError(t, err)
			require.Greater(t, rcMax, internalKeyAt(node, numKeys-1))
		}
	}
}

func TestLeafChainTraversalVisitsEveryKeyInOrder(t *testing.T) {
	tbl := newTestTable(t)
	const n = 60
	for id := uint32(n); id >= 1; id-- {
		insertRow(t, tbl, id)
	}

	cursor, err := tbl.Start()
	require.NoError(t, err)

	var last uint32
	count := 0
	for !cursor.EndOfTable {
		val, err := cursor.Value()
		require.NoError(t, err)
		key := record.Decode(val).ID
		if count > 0 {
			require.Less(t, last, key)
		}
		last = key
		count++
		require.NoError(t, cursor.Advance())
	}
	require.Equal(t, n, count)
}

func TestCloseAndReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	tbl, err := Open(path, Options{})
	require.NoError(t, err)

	for _, id := range []uint32{1, 2, 3} {
		insertRow(t, tbl, id)
	}
	want := scanKeys(t, tbl)
	require.NoError(t, tbl.Close())

	reopened, err := Open(path, Options{})
	require.NoError(t, err)
	defer reopened.Close()

	got := scanKeys(t, reopened)
	require.Equal(t, want, got)
}
