// internal/board/types.go
//
// Core type definitions for the tic-tac-toe engine.
// Defines:
//   - Cell: one square of the grid (empty, X or O).
//   - Board: nine cells in row-major order (index 0–8).
//   - Outcome: result of evaluating a board (continue/win/draw).
//   - Status: coarse lifecycle state of a Game.

package board

import "encoding/json"

// Cell is the content of a single square.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// String renders a cell as "", "X" or "O".
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	}
	return ""
}

// MarshalJSON encodes a cell as its display string.
func (c Cell) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

// Other returns the opposing mark. Empty has no opponent.
func (c Cell) Other() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

// Board is a 3x3 grid indexed 0–8 in row-major order.
type Board [9]Cell

// Full reports whether every cell is occupied.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Outcome is the result of evaluating a board after a move.
type Outcome int

const (
	Continue Outcome = iota
	Win
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	}
	return "continue"
}

// Status is the lifecycle state of a Game.
//   - "setup":  no players yet.
//   - "active": moves are accepted.
//   - "won":    a line was completed, game is over.
//   - "draw":   board filled without a line, game is over.
type Status string

const (
	StatusSetup  Status = "setup"
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusDraw   Status = "draw"
)

// Player is a display name bound to a mark.
type Player struct {
	Name string `json:"name"`
	Mark Cell   `json:"mark"`
}
