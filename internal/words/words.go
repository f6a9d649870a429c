// internal/words/words.go
//
// Provides the word list the rounds are played from.
//
// Responsibilities:
//   - Load the ordered list from WORDS_FILE (plain text or YAML) or fall
//     back to the embedded default list.
//   - Normalize entries: trimmed, lowercase, letters a–z only.
//   - Hand out a shared, read-only copy via List().
//
// Word list formats:
//   - .txt: one word per line; blank lines and '#' comments are skipped.
//   - .yaml / .yml: either a top-level sequence or a mapping with a
//     "words" sequence.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.yaml
//
// Order is preserved: it is the play order. Duplicates are kept.

package words

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/spellbank/assets"
)

var (
	initOnce   sync.Once
	list       []string
	initialErr error
)

// ErrEmpty is returned when a list holds no usable word.
var ErrEmpty = errors.New("words: list is empty")

// Init loads the list once. Later calls return the first result.
func Init() error {
	initOnce.Do(func() {
		if path := os.Getenv("WORDS_FILE"); path != "" {
			list, initialErr = LoadFile(path)
			return
		}
		raw, err := assets.WordList()
		if err != nil {
			initialErr = err
			return
		}
		list = normalize(raw)
		if len(list) == 0 {
			initialErr = ErrEmpty
		}
	})
	return initialErr
}

// List returns the loaded words. Callers must not modify the slice.
func List() []string { return list }

// LoadFile reads a word list from a .txt or .yaml/.yml file.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		raw, err = parseText(data)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	out := normalize(raw)
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// yamlList is the mapping form: `words: [apple, pear]`.
type yamlList struct {
	Words []string `yaml:"words"`
}

func parseYAML(data []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var seq []string
		err := root.Decode(&seq)
		return seq, err
	}
	var m yamlList
	err := root.Decode(&m)
	return m.Words, err
}

func parseText(data []byte) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// normalize lowercases and keeps only non-empty a–z words.
func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
