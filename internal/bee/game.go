// internal/bee/game.go
//
// Spelling bee session state: the current puzzle, the words found so far,
// the running score and a per-puzzle dictionary cache.
//
// Submission runs in two phases so the dictionary lookup never holds the lock:
//   Begin  - normalize + rule checks, mark the game busy, return a Ticket
//            tagged with the puzzle ID.
//   Finish - apply the lookup result. If the puzzle was replaced in between,
//            the result is dropped with ErrStale.
// Submit wires both phases around a Dictionary.

package bee

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Dictionary answers whether a lowercase word is a real dictionary entry.
type Dictionary interface {
	Exists(ctx context.Context, word string) (bool, error)
}

var (
	ErrEmpty         = errors.New("empty word")
	ErrTooShort      = errors.New("word is too short")
	ErrMissingCenter = errors.New("word must include the center letter")
	ErrBadLetter     = errors.New("word can only use the given letters")
	ErrDuplicate     = errors.New("you already found this word")
	ErrBusy          = errors.New("still checking the previous word")
	ErrNotAWord      = errors.New("not a valid word")
	ErrStale         = errors.New("puzzle changed while the word was being checked")
	ErrInterrupted   = errors.New("word check was interrupted")
)

// IsInvalidInput reports whether err is a rule rejection (as opposed to a
// dictionary rejection).
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrTooShort) || errors.Is(err, ErrMissingCenter) ||
		errors.Is(err, ErrBadLetter) || errors.Is(err, ErrDuplicate)
}

// Game is safe for concurrent use.
type Game struct {
	mu     sync.Mutex
	rules  Rules
	puzzle Puzzle
	found  map[string]struct{}
	score  int
	cache  map[string]bool // word → dictionary verdict, for this puzzle only
	busy   bool
}

// NewGame returns a game already loaded with a freshly generated puzzle.
func NewGame(rules Rules, rng *rand.Rand) *Game {
	g := &Game{rules: rules}
	g.Load(Generate(rng, rules))
	return g
}

// NewPuzzle replaces the current puzzle with a newly generated one.
func (g *Game) NewPuzzle(rng *rand.Rand) Puzzle {
	p := Generate(rng, g.rules)
	g.Load(p)
	return p
}

// Load replaces all puzzle state wholesale: found words, score, cache and the
// busy flag start over. An in-flight lookup for the old puzzle becomes stale.
func (g *Game) Load(p Puzzle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.puzzle = p
	g.found = make(map[string]struct{})
	g.score = 0
	g.cache = make(map[string]bool)
	g.busy = false
}

// Puzzle returns the current puzzle.
func (g *Game) Puzzle() Puzzle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.puzzle
}

// Rules returns the scoring rules in use.
func (g *Game) Rules() Rules { return g.rules }

// Ticket is an accepted-so-far submission waiting on its dictionary verdict.
type Ticket struct {
	PuzzleID string
	Word     string // normalized, uppercase
	Cached   bool   // Valid already known from the per-puzzle cache
	Valid    bool
}

// Outcome is the result of an accepted word.
type Outcome struct {
	Word    string `json:"word"`
	Points  int    `json:"points"`
	Pangram bool   `json:"pangram"`
	Score   int    `json:"score"`
	Target  int    `json:"target"`
	Genius  bool   `json:"genius"` // score has reached the target
}

// Normalize trims and uppercases a raw submission.
func Normalize(raw string) string { return strings.ToUpper(strings.TrimSpace(raw)) }

// Begin runs the local checks in order and, when the verdict is not cached,
// marks the game busy until Finish.
func (g *Game) Begin(raw string) (Ticket, error) {
	word := Normalize(raw)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(word); err != nil {
		return Ticket{}, err
	}
	t := Ticket{PuzzleID: g.puzzle.ID, Word: word}
	if v, ok := g.cache[word]; ok {
		t.Cached, t.Valid = true, v
		return t, nil
	}
	if g.busy {
		return Ticket{}, ErrBusy
	}
	g.busy = true
	return t, nil
}

// check applies the rules in order: the first failing rule wins.
func (g *Game) check(word string) error {
	p := g.puzzle
	switch {
	case word == "":
		return ErrEmpty
	case len(word) < g.rules.MinLength:
		return fmt.Errorf("%w: use at least %d letters", ErrTooShort, g.rules.MinLength)
	case strings.IndexByte(word, p.Center) < 0:
		return fmt.Errorf("%w %q", ErrMissingCenter, string(p.Center))
	}
	for i := 0; i < len(word); i++ {
		if !p.Has(word[i]) {
			return ErrBadLetter
		}
	}
	if _, dup := g.found[word]; dup {
		return ErrDuplicate
	}
	return nil
}

// Finish records the dictionary verdict for t and, if valid, scores the word.
func (g *Game) Finish(t Ticket, valid bool) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t.PuzzleID != g.puzzle.ID {
		return Outcome{}, ErrStale
	}
	if !t.Cached {
		g.busy = false
		g.cache[t.Word] = valid
	}
	// check already rejects '-' as a letter outside the puzzle; this keeps
	// hyphenated words out even if Begin's letter rules are relaxed.
	if !valid || strings.Contains(t.Word, "-") {
		return Outcome{}, ErrNotAWord
	}
	if _, dup := g.found[t.Word]; dup {
		return Outcome{}, ErrDuplicate
	}

	pts := g.rules.Score(g.puzzle, t.Word)
	g.found[t.Word] = struct{}{}
	g.score += pts
	return Outcome{
		Word:    t.Word,
		Points:  pts,
		Pangram: g.puzzle.IsPangram(t.Word),
		Score:   g.score,
		Target:  g.puzzle.Target,
		Genius:  g.score >= g.puzzle.Target,
	}, nil
}

// Abandon releases the busy flag held by t without recording a verdict.
func (g *Game) Abandon(t Ticket) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !t.Cached && t.PuzzleID == g.puzzle.ID {
		g.busy = false
	}
}

// Submit validates raw against the puzzle rules and dict. Lookup failures are
// treated as "not a word" and the cause is wrapped into the returned error.
// A lookup cut short by the caller (cancelled or past its deadline) is not
// cached and fails with ErrInterrupted, so the word can be tried again.
func (g *Game) Submit(ctx context.Context, raw string, dict Dictionary) (Outcome, error) {
	t, err := g.Begin(raw)
	if err != nil {
		return Outcome{}, err
	}

	valid := t.Valid
	var lookupErr error
	if !t.Cached {
		valid, lookupErr = dict.Exists(ctx, strings.ToLower(t.Word))
		if lookupErr != nil {
			if interrupted(ctx, lookupErr) {
				g.Abandon(t)
				return Outcome{}, fmt.Errorf("%w: %w", ErrInterrupted, lookupErr)
			}
			log.Warn().Err(lookupErr).Str("word", t.Word).Msg("dictionary lookup failed")
			valid = false
		}
	}

	out, err := g.Finish(t, valid)
	if errors.Is(err, ErrNotAWord) && lookupErr != nil {
		return out, fmt.Errorf("%w: %w", ErrNotAWord, lookupErr)
	}
	return out, err
}

func interrupted(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Level is the progress rank shown next to the score bar.
type Level string

const (
	LevelBeginner Level = "beginner"
	LevelGreat    Level = "great"   // at least half the target
	LevelAmazing  Level = "amazing" // at least 70% of the target
	LevelGenius   Level = "genius"  // target reached
)

// FoundWord is a found word with its display score.
type FoundWord struct {
	Word    string `json:"word"`
	Points  int    `json:"points"`
	Pangram bool   `json:"pangram"`
}

// Snapshot is everything a client needs to redraw the puzzle.
type Snapshot struct {
	PuzzleID string      `json:"puzzleId"`
	Letters  string      `json:"letters"`
	Center   string      `json:"center"`
	Outer    string      `json:"outer"`
	Found    []FoundWord `json:"found"`
	Score    int         `json:"score"`
	Target   int         `json:"target"`
	Progress float64     `json:"progress"` // score/target, capped at 1
	Level    Level       `json:"level"`
	Busy     bool        `json:"busy"`
}

// Snapshot captures the current state, found words sorted alphabetically.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.puzzle
	words := make([]string, 0, len(g.found))
	for w := range g.found {
		words = append(words, w)
	}
	sort.Strings(words)
	found := make([]FoundWord, len(words))
	for i, w := range words {
		found[i] = FoundWord{Word: w, Points: g.rules.Score(p, w), Pangram: p.IsPangram(w)}
	}

	return Snapshot{
		PuzzleID: p.ID,
		Letters:  p.Letters,
		Center:   string(p.Center),
		Outer:    p.Outer(),
		Found:    found,
		Score:    g.score,
		Target:   p.Target,
		Progress: progress(g.score, p.Target),
		Level:    level(g.score, p.Target),
		Busy:     g.busy,
	}
}

func progress(score, target int) float64 {
	if target <= 0 {
		return 1
	}
	f := float64(score) / float64(target)
	if f > 1 {
		return 1
	}
	return f
}

func level(score, target int) Level {
	switch {
	case score >= target:
		return LevelGenius
	case float64(score) >= float64(target)*0.7:
		return LevelAmazing
	case float64(score) >= float64(target)*0.5:
		return LevelGreat
	}
	return LevelBeginner
}
