package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/blog/assets"
	"github.com/robalobadob/blog/internal/bee"
	"github.com/robalobadob/blog/internal/blog"
	"github.com/robalobadob/blog/internal/dictionary"
	"github.com/robalobadob/blog/internal/store"
)

var trained = bee.Puzzle{ID: "fixed", Letters: "TRAINED", Center: 'A', Target: 50}

// client carries the session cookie between requests, like a browser.
type client struct {
	t      *testing.T
	srv    *Server
	cookie *http.Cookie
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	b, err := blog.Load(assets.Posts())
	require.NoError(t, err)
	s, err := New(store.NewMemoryStore(), Options{
		Dictionary:    dictionary.NewWordList([]string{"train", "rain", "trained", "rained", "dear"}),
		Blog:          b,
		SessionSecret: "test-secret",
		DailySalt:     "test-salt",
	})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) }
	return s
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionCookieName {
			c.cookie = ck
		}
	}
	return rec
}

// call expects a 200 and decodes the response into a generic map.
func (c *client) call(method, path string, body any) map[string]any {
	c.t.Helper()
	rec := c.do(method, path, body)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var out map[string]any
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (c *client) session() *store.Session {
	c.t.Helper()
	require.NotNil(c.t, c.cookie, "no session cookie yet")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c.cookie)
	sess := c.srv.sessionFromRequest(req)
	require.NotNil(c.t, sess)
	return sess
}

func TestHealthAndNotFound(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}

	rec := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
	assert.Nil(t, c.cookie, "public routes do not start sessions")
}

func TestCORSPreflight(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	rec := c.do(http.MethodOptions, "/bee/submit", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestSession_CookieRoundTrip(t *testing.T) {
	s := newTestServer(t)
	c := &client{t: t, srv: s}

	c.call(http.MethodGet, "/tictactoe", nil)
	require.NotNil(t, c.cookie)
	assert.True(t, c.cookie.HttpOnly)
	first := c.session()

	c.call(http.MethodGet, "/bee", nil)
	assert.Same(t, first, c.session())
	assert.Equal(t, 1, s.store.Len())

	// A tampered cookie starts a fresh session.
	c.cookie = &http.Cookie{Name: sessionCookieName, Value: c.cookie.Value + "x"}
	c.call(http.MethodGet, "/bee", nil)
	assert.NotSame(t, first, c.session())
	assert.Equal(t, 2, s.store.Len())
}

func TestBoard_FullGame(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}

	out := c.call(http.MethodGet, "/tictactoe", nil)
	assert.Equal(t, "Enter player names to start.", out["headline"])

	out = c.call(http.MethodPost, "/tictactoe/move", map[string]int{"index": 0})
	assert.Equal(t, false, out["ok"])
	assert.Equal(t, "Start a game first.", out["message"])

	out = c.call(http.MethodPost, "/tictactoe/start", map[string]string{"player1": "Ann", "player2": "Ann"})
	assert.Equal(t, false, out["ok"])
	assert.Equal(t, "Please enter different names for each player.", out["message"])

	out = c.call(http.MethodPost, "/tictactoe/start", map[string]string{"player1": "Ann", "player2": "Bob"})
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, "Ann's turn (X)", out["headline"])

	for _, idx := range []int{0, 3, 1, 4} {
		out = c.call(http.MethodPost, "/tictactoe/move", map[string]int{"index": idx})
		require.Equal(t, true, out["ok"])
	}
	out = c.call(http.MethodPost, "/tictactoe/move", map[string]int{"index": 3})
	assert.Equal(t, false, out["ok"])
	assert.Equal(t, "That cell is already taken.", out["message"])

	out = c.call(http.MethodPost, "/tictactoe/move", map[string]int{"index": 2})
	assert.Equal(t, "Ann wins!", out["headline"])
	move := out["move"].(map[string]any)
	assert.Equal(t, []any{0.0, 1.0, 2.0}, move["line"])

	out = c.call(http.MethodPost, "/tictactoe/move", map[string]int{"index": 8})
	assert.Equal(t, "The game is over. Reset to play again.", out["message"])

	out = c.call(http.MethodPost, "/tictactoe/reset", nil)
	assert.Equal(t, "Ann's turn (X)", out["headline"])

	st, ok := c.session().Board.Leaderboard().Get("Ann")
	require.True(t, ok)
	assert.Equal(t, 1, st.Wins)
	st, _ = c.session().Board.Leaderboard().Get("Bob")
	assert.Equal(t, 1, st.Losses)
}

func TestBoard_BadRequests(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}

	rec := c.do(http.MethodPost, "/tictactoe/move", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/tictactoe/start", bytes.NewBufferString("{not json"))
	rec = httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"bad_json"}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestBee_Submit(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	c.call(http.MethodGet, "/bee", nil)
	c.session().Bee.Load(trained)

	out := c.call(http.MethodPost, "/bee/submit", map[string]string{"word": "train"})
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, "Great! +2 points", out["message"])

	out = c.call(http.MethodPost, "/bee/submit", map[string]string{"word": "TRAIN"})
	assert.Equal(t, false, out["ok"])
	assert.Equal(t, "You already found this word.", out["message"])

	out = c.call(http.MethodPost, "/bee/submit", map[string]string{"word": "rat"})
	assert.Equal(t, false, out["ok"])
	assert.Contains(t, out["message"], "too short")

	out = c.call(http.MethodPost, "/bee/submit", map[string]string{"word": "deer"})
	assert.Equal(t, false, out["ok"])
	assert.Contains(t, out["message"], `center letter "A"`)

	out = c.call(http.MethodPost, "/bee/submit", map[string]string{"word": "radian"})
	assert.Equal(t, false, out["ok"])
	assert.Equal(t, "Not a valid word.", out["message"])

	out = c.call(http.MethodPost, "/bee/submit", map[string]string{"word": "  "})
	assert.Equal(t, false, out["ok"])
	assert.Nil(t, out["message"])

	out = c.call(http.MethodPost, "/bee/submit", map[string]string{"word": "trained"})
	assert.Equal(t, "Pangram! +11 points", out["message"])

	state := out["state"].(map[string]any)
	assert.Equal(t, 13.0, state["score"])
	assert.Len(t, state["found"], 2)
}

func TestBee_NewAndDaily(t *testing.T) {
	s := newTestServer(t)
	a := &client{t: t, srv: s}
	b := &client{t: t, srv: s}

	out := a.call(http.MethodPost, "/bee/new", nil)
	letters := out["state"].(map[string]any)["letters"].(string)
	assert.Len(t, letters, bee.PuzzleSize)

	da := a.call(http.MethodPost, "/bee/daily", nil)
	db := b.call(http.MethodPost, "/bee/daily", nil)
	assert.Equal(t, "2024-03-05", da["date"])
	sa, sb := da["state"].(map[string]any), db["state"].(map[string]any)
	assert.Equal(t, sa["letters"], sb["letters"])
	assert.Equal(t, sa["center"], sb["center"])
	assert.Equal(t, sa["target"], sb["target"])
	assert.Equal(t, 0.0, sa["score"])
}

func TestPosts(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}

	out := c.call(http.MethodGet, "/posts", nil)
	posts := out["posts"].([]any)
	require.Len(t, posts, 3)
	first := posts[0].(map[string]any)
	assert.Equal(t, "spelling-bee", first["id"])
	assert.Equal(t, "March 5, 2024", first["dateLabel"])

	out = c.call(http.MethodGet, "/posts/tic-tac-toe", nil)
	assert.Equal(t, "tictactoe", out["widget"])
	assert.Contains(t, out["html"], "<")

	rec := c.do(http.MethodGet, "/posts/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestMetricsEndpoint(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	c.do(http.MethodGet, "/health", nil)
	rec := c.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blog_http_requests_total")
}
