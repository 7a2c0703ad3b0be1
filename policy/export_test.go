package policy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteText(t *testing.T) {
	table, _ := NewTable(4)
	table.hats[3] = [3]int{1, 7, 2}
	var buf bytes.Buffer

	err := WriteText(&buf, table)

	require.NoError(t, err)
	expected := "Hat number: (1's, 2's, 3's)\n" +
		"1: (1,0,0)\n" +
		"2: (1,1,0)\n" +
		"3: (1,1,1)\n" +
		"4: (1,7,2)\n"
	require.Equal(t, expected, buf.String())
}

func TestYAML(t *testing.T) {
	t.Run("trained counts survive a round trip", func(t *testing.T) {
		table, _ := NewTable(5)
		table.hats[2] = [3]int{1, 4, 9}
		table.hats[4] = [3]int{12, 1, 3}
		var buf bytes.Buffer

		require.NoError(t, WriteYAML(&buf, table))
		got, err := ReadYAML(&buf)

		require.NoError(t, err)
		require.Equal(t, table, got)
	})

	t.Run("missing hats keep their initial tokens", func(t *testing.T) {
		doc := "size: 3\nstates:\n  - pile: 3\n    counts: [2, 2, 5]\n"

		got, err := ReadYAML(strings.NewReader(doc))

		require.NoError(t, err)
		require.Equal(t, [3]int{1, 1, 0}, got.Counts(2))
		require.Equal(t, [3]int{2, 2, 5}, got.Counts(3))
	})

	t.Run("rejects broken policies", func(t *testing.T) {
		docs := map[string]string{
			"illegal move":      "size: 2\nstates:\n  - pile: 2\n    counts: [1, 1, 1]\n",
			"dead legal move":   "size: 3\nstates:\n  - pile: 3\n    counts: [1, 0, 1]\n",
			"negative count":    "size: 3\nstates:\n  - pile: 3\n    counts: [1, -1, 1]\n",
			"pile out of range": "size: 3\nstates:\n  - pile: 4\n    counts: [1, 1, 1]\n",
			"short counts":      "size: 3\nstates:\n  - pile: 3\n    counts: [1, 1]\n",
			"duplicate hat":     "size: 3\nstates:\n  - pile: 3\n    counts: [1, 1, 1]\n  - pile: 3\n    counts: [1, 1, 1]\n",
			"empty table":       "size: 0\n",
		}
		for name, doc := range docs {
			_, err := ReadYAML(strings.NewReader(doc))
			require.Error(t, err, name)
		}
	})
}

func TestSaveFile(t *testing.T) {
	table, _ := NewTable(3)
	table.hats[2] = [3]int{1, 2, 6}
	dir := t.TempDir()

	t.Run("text listing by default", func(t *testing.T) {
		path := filepath.Join(dir, "hat-contents.txt")
		require.NoError(t, SaveFile(path, table))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "3: (1,2,6)\n")

		_, err = LoadFile(path)
		require.Error(t, err, "Text listings cannot be loaded")
	})

	t.Run("yaml by extension", func(t *testing.T) {
		path := filepath.Join(dir, "policy.yaml")
		require.NoError(t, SaveFile(path, table))

		got, err := LoadFile(path)
		require.NoError(t, err)
		require.Equal(t, table, got)
	})
}
