package redis

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps server-side web sessions in Redis, implementing
// gorilla/sessions.Store. The cookie carries only an opaque session ID; the
// session values live under session:<id> with the configured TTL, so
// invalidating a session is a single key delete. Sessions are isolated per
// key; no cross-session state exists.
type SessionStore struct {
	client  *redis.Client
	options sessions.Options
}

// NewSessionStore wraps the given Redis client. ttl bounds both the cookie
// Max-Age and the Redis key expiry.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionStore{
		client: client,
		options: sessions.Options{
			Path:     "/",
			MaxAge:   int(ttl / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns a cached session from the request registry, loading it on
// first use.
func (s *SessionStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie, or returns a fresh one
// when there is no cookie or the stored session has expired. The session is
// not written to Redis until Save; sessions are created on demand.
func (s *SessionStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := s.options
	session.Options = &opts
	session.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return session, nil
	}

	values, err := s.load(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session, nil
		}
		return session, err
	}

	session.ID = cookie.Value
	session.IsNew = false
	for k, v := range values {
		session.Values[k] = v
	}
	return session, nil
}

// Save persists the session and writes the ID cookie. A MaxAge < 0 deletes
// the Redis key and expires the cookie, which is how logout invalidates.
func (s *SessionStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), sessionKeyPrefix+session.ID).Err(); err != nil {
				return fmt.Errorf("session delete: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = newSessionID()
	}

	values := make(map[string]any, len(session.Values))
	for k, v := range session.Values {
		key, ok := k.(string)
		if !ok {
			return fmt.Errorf("session save: non-string key %v", k)
		}
		values[key] = v
	}
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}

	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.client.Set(r.Context(), sessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}

	http.SetCookie(w, sessions.NewCookie(session.Name(), session.ID, session.Options))
	return nil
}

func (s *SessionStore) load(ctx context.Context, id string) (map[string]any, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(payload, &values); err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}
	return values, nil
}

// newSessionID returns 32 bytes of randomness base32-encoded, the same shape
// gorilla's cookie store uses for its IDs.
func newSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session id: %v", err))
	}
	return strings.TrimRight(base32.StdEncoding.EncodeToString(b), "=")
}
