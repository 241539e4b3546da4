package board

import "sort"

// Stats are the per-player counters. They only ever grow.
type Stats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// LBRow is one leaderboard line ready for display.
type LBRow struct {
	Name string `json:"name"`
	Stats
}

// Leaderboard tracks results by player name for the lifetime of a session.
type Leaderboard struct {
	stats map[string]*Stats
	order []string // first-appearance order, used as the final tiebreak
}

// NewLeaderboard returns an empty leaderboard.
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{stats: make(map[string]*Stats)}
}

func (l *Leaderboard) ensure(name string) *Stats {
	if s, ok := l.stats[name]; ok {
		return s
	}
	s := &Stats{}
	l.stats[name] = s
	l.order = append(l.order, name)
	return s
}

func (l *Leaderboard) record(winner, loser string) {
	l.ensure(winner).Wins++
	l.ensure(loser).Losses++
}

func (l *Leaderboard) recordDraw(a, b string) {
	l.ensure(a).Draws++
	l.ensure(b).Draws++
}

// Get returns the counters for name.
func (l *Leaderboard) Get(name string) (Stats, bool) {
	s, ok := l.stats[name]
	if !ok {
		return Stats{}, false
	}
	return *s, true
}

// Len reports the number of known players.
func (l *Leaderboard) Len() int { return len(l.order) }

// Rows returns players sorted by wins (desc), then losses (asc), then first appearance.
func (l *Leaderboard) Rows() []LBRow {
	out := make([]LBRow, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, LBRow{Name: name, Stats: *l.stats[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Losses < out[j].Losses
	})
	return out
}
