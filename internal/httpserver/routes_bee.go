// internal/httpserver/routes_bee.go
//
// HTTP routes for the spelling bee widget.
//   - GET  /bee         → current puzzle, found words, score and level
//   - POST /bee/new     → replace the puzzle with a random one
//   - POST /bee/daily   → replace the puzzle with today's shared puzzle
//   - POST /bee/submit  → check {word} against the rules and the dictionary
//
// Submissions answer 200 with ok=false and a message for every rejection;
// an empty word is ignored without a message.

package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/blog/internal/bee"
	"github.com/robalobadob/blog/internal/daily"
	"github.com/robalobadob/blog/internal/metrics"
)

// mountBee registers all /bee routes.
func (s *Server) mountBee(r chi.Router) {
	r.Route("/bee", func(r chi.Router) {
		r.Get("/", s.handleBeeState)
		r.Post("/new", s.handleBeeNew)
		r.Post("/daily", s.handleBeeDaily)
		r.Post("/submit", s.handleBeeSubmit)
	})
}

type beeSubmitReq struct {
	Word string `json:"word"`
}

type beeRes struct {
	OK      bool         `json:"ok"`
	Message string       `json:"message,omitempty"`
	Date    string       `json:"date,omitempty"` // set for the daily puzzle
	Result  *bee.Outcome `json:"result,omitempty"`
	State   bee.Snapshot `json:"state"`
}

func (s *Server) handleBeeState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, beeRes{OK: true, State: sessionFrom(r).Bee.Snapshot()})
}

func (s *Server) handleBeeNew(w http.ResponseWriter, r *http.Request) {
	g := sessionFrom(r).Bee
	p := g.NewPuzzle(newRand())
	log.Debug().Str("puzzle", p.ID).Str("letters", p.Letters).Msg("new bee puzzle")
	writeJSON(w, http.StatusOK, beeRes{OK: true, State: g.Snapshot()})
}

func (s *Server) handleBeeDaily(w http.ResponseWriter, r *http.Request) {
	g := sessionFrom(r).Bee
	now := s.now()
	g.Load(bee.Generate(daily.Rand(now, s.dailySalt), g.Rules()))
	writeJSON(w, http.StatusOK, beeRes{OK: true, Date: daily.DateKey(now), State: g.Snapshot()})
}

func (s *Server) handleBeeSubmit(w http.ResponseWriter, r *http.Request) {
	var req beeSubmitReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g := sessionFrom(r).Bee

	out, err := g.Submit(r.Context(), req.Word, s.dict)
	if err != nil {
		if !errors.Is(err, bee.ErrEmpty) {
			metrics.BeeSubmission(submissionResult(err))
		}
		writeJSON(w, http.StatusOK, beeRes{Message: beeMessage(err), State: g.Snapshot()})
		return
	}
	metrics.BeeSubmission("accepted")

	msg := fmt.Sprintf("Great! +%d points", out.Points)
	if out.Pangram {
		msg = fmt.Sprintf("Pangram! +%d points", out.Points)
	}
	if out.Genius {
		msg += ". You reached Genius!"
	}
	writeJSON(w, http.StatusOK, beeRes{OK: true, Message: msg, Result: &out, State: g.Snapshot()})
}

// submissionResult is the metrics label for a rejected word.
func submissionResult(err error) string {
	switch {
	case bee.IsInvalidInput(err):
		return "invalid"
	case errors.Is(err, bee.ErrBusy):
		return "busy"
	case errors.Is(err, bee.ErrStale):
		return "stale"
	case errors.Is(err, bee.ErrInterrupted):
		return "interrupted"
	}
	return "rejected"
}

func beeMessage(err error) string {
	switch {
	case errors.Is(err, bee.ErrEmpty):
		return ""
	case errors.Is(err, bee.ErrNotAWord):
		return "Not a valid word."
	case errors.Is(err, bee.ErrDuplicate):
		return "You already found this word."
	case errors.Is(err, bee.ErrBusy):
		return "Still checking your last word."
	case errors.Is(err, bee.ErrStale):
		return "The puzzle changed. Try again."
	case errors.Is(err, bee.ErrInterrupted):
		return "Couldn't check that word. Try again."
	}
	return sentence(err)
}
