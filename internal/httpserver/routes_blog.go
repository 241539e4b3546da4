package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/blog/internal/blog"
)

// mountBlog registers GET /posts and GET /posts/{id}.
func (s *Server) mountBlog(r chi.Router) {
	r.Get("/posts", func(w http.ResponseWriter, r *http.Request) {
		posts := []blog.Summary{}
		if s.blog != nil {
			posts = s.blog.List()
		}
		writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
	})
	r.Get("/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		if s.blog == nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		id := chi.URLParam(r, "id")
		post, err := s.blog.Render(id)
		switch {
		case errors.Is(err, blog.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "not_found")
			return
		case err != nil:
			log.Error().Err(err).Str("post", id).Msg("render post")
			writeError(w, http.StatusInternalServerError, "render_failed")
			return
		}
		writeJSON(w, http.StatusOK, post)
	})
}
