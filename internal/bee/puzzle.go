// internal/bee/puzzle.go
//
// Puzzle generation and scoring for the spelling bee.
// A puzzle is seven distinct uppercase letters with one mandatory center
// letter and a "genius" target score. Scoring constants live in Rules so the
// game-design numbers stay in one place.

package bee

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

const (
	vowels     = "AEIOU"
	consonants = "BCDFGHJKLMNPQRSTVWXYZ"

	// PuzzleSize is the number of distinct letters in a puzzle.
	PuzzleSize = 7
)

// Rules holds the tunable scoring and generation constants.
type Rules struct {
	MinLength       int // shortest accepted word
	ShortWordPoints int // points for a word of exactly MinLength letters
	LengthOffset    int // longer words score len - LengthOffset
	PangramBonus    int // flat bonus for using every puzzle letter
	TargetMin       int // genius target lower bound (inclusive)
	TargetMax       int // genius target upper bound (inclusive)
}

// DefaultRules are the classic values: 4-letter words score 1, longer words
// len-3, pangrams +7, and a genius target between 50 and 149.
var DefaultRules = Rules{
	MinLength:       4,
	ShortWordPoints: 1,
	LengthOffset:    3,
	PangramBonus:    7,
	TargetMin:       50,
	TargetMax:       149,
}

// Puzzle is an immutable set of letters plus its center letter and target.
type Puzzle struct {
	ID      string // unique per generated instance
	Letters string // the seven letters, in display order
	Center  byte
	Target  int
}

// Generate draws a new puzzle from rng.
//
// Between one and three distinct vowels are chosen (uniformly), the rest are
// distinct consonants. The combined letters are shuffled, the center letter is
// picked uniformly among them, and the target is uniform in
// [TargetMin, TargetMax].
func Generate(rng *rand.Rand, rules Rules) Puzzle {
	nv := 1 + rng.IntN(3)
	letters := append(sample(rng, vowels, nv), sample(rng, consonants, PuzzleSize-nv)...)
	rng.Shuffle(len(letters), func(i, j int) { letters[i], letters[j] = letters[j], letters[i] })

	target := rules.TargetMin
	if span := rules.TargetMax - rules.TargetMin; span > 0 {
		target += rng.IntN(span + 1)
	}
	return Puzzle{
		ID:      uuid.NewString(),
		Letters: string(letters),
		Center:  letters[rng.IntN(len(letters))],
		Target:  target,
	}
}

// sample picks n distinct bytes from set without replacement.
func sample(rng *rand.Rand, set string, n int) []byte {
	perm := rng.Perm(len(set))
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = set[perm[i]]
	}
	return out
}

// Has reports whether c is one of the puzzle letters.
func (p Puzzle) Has(c byte) bool { return strings.IndexByte(p.Letters, c) >= 0 }

// Outer returns the six non-center letters in display order.
func (p Puzzle) Outer() string {
	return strings.Replace(p.Letters, string(p.Center), "", 1)
}

// IsPangram reports whether word uses every puzzle letter at least once.
// word must already be uppercase.
func (p Puzzle) IsPangram(word string) bool {
	for i := 0; i < len(p.Letters); i++ {
		if strings.IndexByte(word, p.Letters[i]) < 0 {
			return false
		}
	}
	return true
}

// Score returns the points word is worth in p. It is pure: the found-word list
// recomputes it for display.
func (r Rules) Score(p Puzzle, word string) int {
	n := len(word)
	pts := n - r.LengthOffset
	if n <= r.MinLength {
		pts = r.ShortWordPoints
	}
	if p.IsPangram(word) {
		pts += r.PangramBonus
	}
	return pts
}
