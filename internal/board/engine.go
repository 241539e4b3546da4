// internal/board/engine.go
//
// Game engine for a single tic-tac-toe session.
// Responsibilities:
//   - Start games between two distinctly named players (X moves first).
//   - Apply moves, rejecting inactive games and occupied cells.
//   - Detect wins over the eight fixed lines and draws on a full board.
//   - Record results in the session leaderboard, which survives resets.
//
// A Game is not safe for concurrent use; callers serialize access.
package board

import (
	"errors"
	"strings"
)

var (
	ErrSameNames  = errors.New("please enter different names for each player")
	ErrNotStarted = errors.New("game has not been started")
)

// Default names used when a player leaves the name blank.
const (
	DefaultPlayer1 = "Player 1"
	DefaultPlayer2 = "Player 2"
)

// lines are the winning triples: rows, then columns, then diagonals.
// The first completed line in this order is the one reported for highlighting.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Evaluate reports the outcome of b and, for a win, the first completed line.
func Evaluate(b Board) (Outcome, []int) {
	for _, l := range lines {
		a := b[l[0]]
		if a != Empty && a == b[l[1]] && a == b[l[2]] {
			return Win, []int{l[0], l[1], l[2]}
		}
	}
	if b.Full() {
		return Draw, nil
	}
	return Continue, nil
}

// Game holds the board, turn and players for one session, plus its leaderboard.
type Game struct {
	board       Board
	turn        Cell
	players     [2]Player
	status      Status
	winner      string
	line        []int
	leaderboard *Leaderboard
}

// New returns a game in setup state with an empty leaderboard.
func New() *Game {
	return &Game{status: StatusSetup, leaderboard: NewLeaderboard()}
}

// Result describes the effect of one accepted move.
type Result struct {
	Index   int     `json:"index"`
	Mark    Cell    `json:"mark"`
	Outcome Outcome `json:"-"`
	Winner  string  `json:"winner,omitempty"`
	Line    []int   `json:"line,omitempty"`
}

// Start seats two players and begins a fresh game.
// Blank names fall back to "Player 1"/"Player 2". Equal names are rejected and
// leave the previous state untouched.
func (g *Game) Start(name1, name2 string) error {
	name1 = strings.TrimSpace(name1)
	name2 = strings.TrimSpace(name2)
	if name1 == "" {
		name1 = DefaultPlayer1
	}
	if name2 == "" {
		name2 = DefaultPlayer2
	}
	if name1 == name2 {
		return ErrSameNames
	}
	g.leaderboard.ensure(name1)
	g.leaderboard.ensure(name2)
	g.players = [2]Player{{Name: name1, Mark: X}, {Name: name2, Mark: O}}
	g.reset()
	return nil
}

// Reset clears the board and reactivates play with X to move.
// Players and leaderboard are kept.
func (g *Game) Reset() error {
	if g.status == StatusSetup {
		return ErrNotStarted
	}
	g.reset()
	return nil
}

func (g *Game) reset() {
	g.board = Board{}
	g.turn = X
	g.status = StatusActive
	g.winner = ""
	g.line = nil
}

// Play places the current mark at idx.
// Returns ok=false without touching state when the game is not active, idx is
// out of range, or the cell is occupied.
func (g *Game) Play(idx int) (Result, bool) {
	if g.status != StatusActive || idx < 0 || idx >= len(g.board) || g.board[idx] != Empty {
		return Result{}, false
	}
	mark := g.turn
	g.board[idx] = mark
	res := Result{Index: idx, Mark: mark}

	outcome, line := Evaluate(g.board)
	res.Outcome = outcome
	switch outcome {
	case Win:
		winner, loser := g.playerFor(mark), g.playerFor(mark.Other())
		g.leaderboard.record(winner.Name, loser.Name)
		g.status, g.winner, g.line = StatusWon, winner.Name, line
		res.Winner, res.Line = winner.Name, line
	case Draw:
		g.leaderboard.recordDraw(g.players[0].Name, g.players[1].Name)
		g.status = StatusDraw
	default:
		g.turn = mark.Other()
	}
	return res, true
}

func (g *Game) playerFor(mark Cell) Player {
	if mark == O {
		return g.players[1]
	}
	return g.players[0]
}

// Board returns a copy of the grid.
func (g *Game) Board() Board { return g.board }

// Status reports the lifecycle state.
func (g *Game) Status() Status { return g.status }

// Turn reports the mark to move next.
func (g *Game) Turn() Cell { return g.turn }

// Leaderboard exposes the session leaderboard.
func (g *Game) Leaderboard() *Leaderboard { return g.leaderboard }

// Snapshot is everything a client needs to redraw the widget.
type Snapshot struct {
	Status      Status   `json:"status"`
	Cells       [9]Cell  `json:"cells"`
	Turn        Cell     `json:"turn"`
	CurrentName string   `json:"currentName,omitempty"`
	Players     []Player `json:"players"`
	Winner      string   `json:"winner,omitempty"`
	WinningLine []int    `json:"winningLine"`
	Leaderboard []LBRow  `json:"leaderboard"`
}

// Snapshot captures the current state for rendering.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Status:      g.status,
		Cells:       g.board,
		Winner:      g.winner,
		WinningLine: append([]int{}, g.line...),
		Leaderboard: g.leaderboard.Rows(),
		Players:     []Player{},
	}
	if g.status != StatusSetup {
		s.Players = []Player{g.players[0], g.players[1]}
	}
	if g.status == StatusActive {
		s.Turn = g.turn
		s.CurrentName = g.playerFor(g.turn).Name
	}
	return s
}
