package repl

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"eggshell/internal/btree"
)

func resultLines(t *testing.T, output string) []string {
	t.Helper()
	stripped := strings.ReplaceAll(output, prompt, "")
	lines := strings.Split(stripped, "\n")
	var out []string
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func runREPL(t *testing.T, dbPath string, input string) string {
	t.Helper()
	tbl, err := btree.Open(dbPath, btree.Options{})
	require.NoError(t, err)
	defer tbl.Close()

	var out bytes.Buffer
	require.NoError(t, Run(strings.NewReader(input), &out, tbl))
	return out.String()
}

func TestScenarioA_SingleInsertAndScan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	out := runREPL(t, path, "insert 1 user1 person1@example.com\nselect\n.exit\n")
	require.Equal(t, []string{
		"Executed.",
		"(1, user1, person1@example.com)",
		"Executed.",
	}, resultLines(t, out))
}

func TestScenarioB_DuplicateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	out := runREPL(t, path, "insert 1 a a@a\ninsert 1 b b@b\n.exit\n")
	require.Equal(t, []string{
		"Executed.",
		"Error: Duplicate key.",
	}, resultLines(t, out))
}

func TestScenarioC_StringTooLong(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	longUsername := strings.Repeat("a", 33)
	out := runREPL(t, path, "insert 1 "+longUsername+" a@a\n.exit\n")
	require.Equal(t, []string{"String is too long."}, resultLines(t, out))
}

func TestScenarioD_IDOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	out := runREPL(t, path, "insert -1 a a@a\n.exit\n")
	require.Equal(t, []string{"Id out of range"}, resultLines(t, out))
}

func TestScenarioE_SingleLeafSplit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	var input strings.Builder
	for i := 1; i <= 14; i++ {
		input.WriteString("insert ")
		input.WriteString(strconv.Itoa(i))
		input.WriteString(" user email@example.com\n")
	}
	input.WriteString(".btree\n.exit\n")

	out := runREPL(t, path, input.String())
	lines := resultLines(t, out)
	require.Contains(t, lines, "Tree:")
	require.Contains(t, lines, "- internal (size 1)")
	require.Contains(t, lines, "  - key 7")
}

func TestScenarioF_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	runREPL(t, path, "insert 1 a a@a\ninsert 2 b b@b\ninsert 3 c c@c\n.exit\n")

	out := runREPL(t, path, "select\n.exit\n")
	require.Equal(t, []string{
		"(1, a, a@a)",
		"(2, b, b@b)",
		"(3, c, c@c)",
		"Executed.",
	}, resultLines(t, out))
}

func TestUnrecognizedCommandAndStatement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	out := runREPL(t, path, ".frobnicate\nbogus statement\n.exit\n")
	require.Equal(t, []string{
		"Unrecognized command '.frobnicate'.",
		"Unrecognized keyword at start of 'bogus statement'.",
	}, resultLines(t, out))
}
