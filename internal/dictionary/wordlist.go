// internal/dictionary/wordlist.go
//
// Offline dictionary backed by a word list.
//
// Loading (LoadWordList):
//   1. If path is set, read one word per line from that file.
//   2. Otherwise fall back to the embedded assets/words.txt.
//
// Words are lowercased and trimmed; anything that is not purely a–z is dropped.

package dictionary

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/robalobadob/blog/assets"
)

// WordList answers lookups from an in-memory set.
type WordList struct {
	set map[string]struct{}
}

// NewWordList builds a WordList from raw words.
func NewWordList(words []string) *WordList {
	wl := &WordList{set: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && isAlpha(w) {
			wl.set[w] = struct{}{}
		}
	}
	return wl
}

// LoadWordList reads path, or the embedded list when path is empty.
func LoadWordList(path string) (*WordList, error) {
	var words []string
	var err error
	if path != "" {
		words, err = readWordFile(path)
	} else {
		words, err = assets.WordList()
	}
	if err != nil {
		return nil, err
	}
	wl := NewWordList(words)
	if wl.Len() == 0 {
		return nil, errors.New("dictionary: word list is empty")
	}
	return wl, nil
}

func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
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

// Exists reports whether word is in the list. It never fails.
func (wl *WordList) Exists(_ context.Context, word string) (bool, error) {
	_, ok := wl.set[strings.ToLower(word)]
	return ok, nil
}

// Len returns the number of distinct words loaded.
func (wl *WordList) Len() int { return len(wl.set) }
