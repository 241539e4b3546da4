package httpserver

import (
	"context"
	"crypto/sha256"
	"io"
	"math/rand/v2"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/hkdf"

	"github.com/robalobadob/blog/internal/bee"
	"github.com/robalobadob/blog/internal/metrics"
	"github.com/robalobadob/blog/internal/store"
)

const sessionCookieName = "blog_session"

// ctxSessionKey is the context key type for storing the *store.Session.
type ctxSessionKey struct{}

// deriveKey stretches secret into a 32-byte HMAC key bound to info.
func deriveKey(secret, info string) ([]byte, error) {
	if secret == "" {
		secret = "dev_secret_change_me"
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, err
	}
	return key, nil
}

// withSession loads the caller's session from the signed cookie, or starts a
// new one and sets the cookie. Handlers below it can rely on sessionFrom.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessionFromRequest(r)
		if sess == nil {
			var err error
			sess, err = s.newSession(r.Context())
			if err != nil {
				log.Error().Err(err).Msg("create session")
				writeError(w, http.StatusInternalServerError, "session_failed")
				return
			}
			if err := s.setSessionCookie(w, sess.ID); err != nil {
				log.Error().Err(err).Msg("sign session")
				writeError(w, http.StatusInternalServerError, "session_failed")
				return
			}
		}
		metrics.SetSessions(s.store.Len())
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session installed by withSession.
func sessionFrom(r *http.Request) *store.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*store.Session)
	return sess
}

// sessionFromRequest verifies the cookie and looks the session up.
// Any failure (no cookie, bad signature, swept session) yields nil.
func (s *Server) sessionFromRequest(r *http.Request) *store.Session {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return s.sessionKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid || claims.Subject == "" {
		return nil
	}
	sess, err := s.store.Get(r.Context(), claims.Subject)
	if err != nil {
		return nil
	}
	return sess
}

func (s *Server) newSession(ctx context.Context) (*store.Session, error) {
	sess := store.NewSession(uuid.NewString(), bee.NewGame(s.rules, newRand()), s.now())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	log.Debug().Str("session", sess.ID).Msg("new session")
	return sess, nil
}

// setSessionCookie writes an HS256-signed cookie naming the session. It has no
// expiry: the browser drops it when closed, matching the in-memory lifetime.
func (s *Server) setSessionCookie(w http.ResponseWriter, id string) error {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  id,
		IssuedAt: jwt.NewNumericDate(s.now()),
	})
	ss, err := t.SignedString(s.sessionKey)
	if err != nil {
		return err
	}
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode // required for cross-site front ends when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    ss,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
	})
	return nil
}

// newRand returns an independently seeded generator for puzzle generation.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
