package policy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sticks/game"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const textHeader = "Hat number: (1's, 2's, 3's)"

// WriteText writes one "pile: (ones,twos,threes)" line per hat.
func WriteText(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, textHeader); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for pile := 1; pile <= t.Size(); pile++ {
		c := t.Counts(pile)
		if _, err := fmt.Fprintf(bw, "%d: (%d,%d,%d)\n", pile, c[0], c[1], c[2]); err != nil {
			return errors.Wrapf(err, "failed to write hat %d", pile)
		}
	}
	return errors.Wrap(bw.Flush(), "failed to flush policy")
}

type document struct {
	Size   int           `yaml:"size"`
	States []stateCounts `yaml:"states"`
}

type stateCounts struct {
	Pile   int   `yaml:"pile"`
	Counts []int `yaml:"counts,flow"`
}

// WriteYAML writes the table in a form ReadYAML restores.
func WriteYAML(w io.Writer, t *Table) error {
	doc := document{Size: t.Size(), States: make([]stateCounts, 0, t.Size())}
	for pile := 1; pile <= t.Size(); pile++ {
		c := t.Counts(pile)
		doc.States = append(doc.States, stateCounts{Pile: pile, Counts: c[:]})
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrap(err, "failed to encode policy")
	}
	return errors.Wrap(encoder.Close(), "failed to close policy encoder")
}

// ReadYAML restores a table written by WriteYAML. Hats holding tokens for
// moves larger than their pile, or none for a legal move, are rejected.
// Hats missing from the document keep their initial tokens.
func ReadYAML(r io.Reader) (*Table, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode policy")
	}
	t, err := NewTable(doc.Size)
	if err != nil {
		return nil, err
	}
	seen := make([]bool, doc.Size)
	for _, s := range doc.States {
		if s.Pile < 1 || s.Pile > doc.Size {
			return nil, errors.Errorf("hat %d outside policy range 1..%d", s.Pile, doc.Size)
		}
		if seen[s.Pile-1] {
			return nil, errors.Errorf("hat %d listed twice", s.Pile)
		}
		seen[s.Pile-1] = true
		if len(s.Counts) != game.MaxTake {
			return nil, errors.Errorf("hat %d: want %d counts, got %d", s.Pile, game.MaxTake, len(s.Counts))
		}
		for i, count := range s.Counts {
			m := game.Move(i + 1)
			switch {
			case count < 0:
				return nil, errors.Errorf("hat %d: negative count for move %d", s.Pile, m)
			case count > 0 && !game.IsLegal(s.Pile, m):
				return nil, errors.Errorf("hat %d: holds illegal move %d", s.Pile, m)
			case count == 0 && game.IsLegal(s.Pile, m):
				return nil, errors.Errorf("hat %d: no tokens left for legal move %d", s.Pile, m)
			}
			t.hats[s.Pile-1][i] = count
		}
	}
	return t, nil
}

// SaveFile writes YAML for .yaml/.yml paths and the text listing otherwise.
func SaveFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	if isYAML(path) {
		err = WriteYAML(f, t)
	} else {
		err = WriteText(f, t)
	}
	if err != nil {
		return err
	}
	return errors.Wrapf(f.Close(), "failed to close %s", path)
}

// LoadFile reads a table saved as YAML.
func LoadFile(path string) (*Table, error) {
	if !isYAML(path) {
		return nil, errors.Errorf("cannot load %s: only YAML policies can be loaded", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return ReadYAML(f)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
