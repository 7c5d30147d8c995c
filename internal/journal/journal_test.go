package journal

import (
	"encoding/binary"
	"hash/crc32"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordAppendsHeaderPreImageAndSuccessByte(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(dir)
	require.NoError(t, err)
	defer j.Close()

	before := make([]byte, 4096)
	for i := range before {
		before[i] = byte(i)
	}
	require.NoError(t, j.Record(3, before))
	require.NoError(t, j.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(dir + "/" + entries[0].Name())
	require.NoError(t, err)
	require.Len(t, data, headerSize+len(before)+1)

	require.EqualValues(t, 3, binary.LittleEndian.Uint32(data[0:4]))
	require.EqualValues(t, len(before), binary.LittleEndian.Uint32(data[4:8]))
	require.EqualValues(t, crc32.ChecksumIEEE(before), binary.LittleEndian.Uint32(data[8:12]))
	require.Equal(t, byte(1), data[len(data)-1])
}

func TestOpenNamesSessionFilesUniquely(t *testing.T) {
	dir := t.TempDir()
	a, err := Open(dir)
	require.NoError(t, err)
	defer a.Close()
	b, err := Open(dir)
	require.NoError(t, err)
	defer b.Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NotEqual(t, entries[0].Name(), entries[1].Name())
}
