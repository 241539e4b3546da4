// internal/httpserver/routes_board.go
//
// HTTP routes for the tic-tac-toe widget.
//   - GET  /tictactoe        → current board, players and leaderboard
//   - POST /tictactoe/start  → seat two players and begin a game
//   - POST /tictactoe/move   → place the current mark at {index}
//   - POST /tictactoe/reset  → clear the board, keep players and leaderboard
//
// Rule rejections (equal names, illegal moves) answer 200 with ok=false and a
// message, so the widget can show it inline.

package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/blog/internal/board"
	"github.com/robalobadob/blog/internal/metrics"
)

// mountBoard registers all /tictactoe routes.
func (s *Server) mountBoard(r chi.Router) {
	r.Route("/tictactoe", func(r chi.Router) {
		r.Get("/", s.handleBoardState)
		r.Post("/start", s.handleBoardStart)
		r.Post("/move", s.handleBoardMove)
		r.Post("/reset", s.handleBoardReset)
	})
}

type boardStartReq struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

type boardMoveReq struct {
	Index *int `json:"index"`
}

// boardRes is the common reply for every /tictactoe route.
type boardRes struct {
	OK       bool           `json:"ok"`
	Message  string         `json:"message,omitempty"`
	Headline string         `json:"headline"`
	Move     *board.Result  `json:"move,omitempty"`
	State    board.Snapshot `json:"state"`
}

func (s *Server) handleBoardState(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Lock()
	defer sess.Unlock()
	writeJSON(w, http.StatusOK, boardReply(sess.Board, true, "", nil))
}

func (s *Server) handleBoardStart(w http.ResponseWriter, r *http.Request) {
	var req boardStartReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	sess.Lock()
	defer sess.Unlock()

	if err := sess.Board.Start(req.Player1, req.Player2); err != nil {
		writeJSON(w, http.StatusOK, boardReply(sess.Board, false, sentence(err), nil))
		return
	}
	writeJSON(w, http.StatusOK, boardReply(sess.Board, true, "", nil))
}

func (s *Server) handleBoardMove(w http.ResponseWriter, r *http.Request) {
	var req boardMoveReq
	if err := decode(r, &req); err != nil || req.Index == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	sess.Lock()
	defer sess.Unlock()

	res, ok := sess.Board.Play(*req.Index)
	if !ok {
		writeJSON(w, http.StatusOK, boardReply(sess.Board, false, illegalMove(sess.Board, *req.Index), nil))
		return
	}
	switch res.Outcome {
	case board.Win, board.Draw:
		metrics.BoardFinished(res.Outcome.String())
	}
	writeJSON(w, http.StatusOK, boardReply(sess.Board, true, "", &res))
}

func (s *Server) handleBoardReset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Lock()
	defer sess.Unlock()

	if err := sess.Board.Reset(); err != nil {
		writeJSON(w, http.StatusOK, boardReply(sess.Board, false, sentence(err), nil))
		return
	}
	writeJSON(w, http.StatusOK, boardReply(sess.Board, true, "", nil))
}

func boardReply(g *board.Game, ok bool, msg string, move *board.Result) boardRes {
	snap := g.Snapshot()
	return boardRes{OK: ok, Message: msg, Headline: headline(snap), Move: move, State: snap}
}

// headline is the status line shown above the grid.
func headline(s board.Snapshot) string {
	switch s.Status {
	case board.StatusActive:
		return fmt.Sprintf("%s's turn (%s)", s.CurrentName, s.Turn)
	case board.StatusWon:
		return s.Winner + " wins!"
	case board.StatusDraw:
		return "It's a draw!"
	}
	return "Enter player names to start."
}

func illegalMove(g *board.Game, idx int) string {
	switch {
	case g.Status() == board.StatusSetup:
		return sentence(board.ErrNotStarted)
	case g.Status() != board.StatusActive:
		return "The game is over. Reset to play again."
	case idx < 0 || idx > 8:
		return "Pick a cell between 0 and 8."
	}
	return "That cell is already taken."
}

// sentence turns an engine error into a message for display.
func sentence(err error) string {
	switch {
	case errors.Is(err, board.ErrSameNames):
		return "Please enter different names for each player."
	case errors.Is(err, board.ErrNotStarted):
		return "Start a game first."
	}
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
