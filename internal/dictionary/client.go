// internal/dictionary/client.go
//
// HTTP dictionary lookup against a free-dictionary style API:
//   GET {baseURL}{word} → 200 with a JSON array of entries, 404 when unknown.
//
// A word exists only when the first entry's "word" field matches it
// (case-insensitive). Outbound calls share a token-bucket limiter so a burst
// of submissions cannot hammer the upstream API.

package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// DefaultURL is the public free dictionary API.
const DefaultURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"

const maxBody = 1 << 20

// ErrUnavailable is returned when the upstream answers with neither a
// definitive hit nor a definitive miss.
var ErrUnavailable = errors.New("dictionary unavailable")

// Client looks words up over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a Client. rps <= 0 disables throttling.
func NewClient(baseURL string, rps float64, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	lim := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		lim = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: lim,
	}
}

// Exists reports whether word has a dictionary entry.
func (c *Client) Exists(ctx context.Context, word string) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			// the limiter refuses up front when the wait would outlast ctx
			return false, fmt.Errorf("dictionary rate limit: %w: %w", context.DeadlineExceeded, err)
		}
		return false, fmt.Errorf("dictionary rate limit: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.PathEscape(word), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("dictionary lookup %q: %w", word, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return false, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return false, fmt.Errorf("dictionary read %q: %w", word, err)
	}
	if !gjson.ValidBytes(body) {
		return false, fmt.Errorf("%w: malformed response", ErrUnavailable)
	}
	entry := gjson.GetBytes(body, "0.word").String()
	return entry != "" && strings.EqualFold(entry, word), nil
}
