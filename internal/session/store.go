package session

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ariefcatur/queencare-api/internal/redisx"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a sessions.Store that keeps session values in Redis. The
// cookie only carries the signed session id.
type RedisStore struct {
	Client  *redis.Client
	Codecs  []securecookie.Codec
	Options *sessions.Options
	// Serializer defaults to gob.
	Serializer securecookie.Serializer
}

var _ sessions.Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, opts *sessions.Options, keyPairs ...[]byte) *RedisStore {
	return &RedisStore{
		Client:     client,
		Codecs:     securecookie.CodecsFromPairs(keyPairs...),
		Options:    opts,
		Serializer: securecookie.GobEncoder{},
	}
}

// Get returns the session for name, cached per request by the sessions registry.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. An unknown, expired or
// tampered cookie yields a fresh session.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		return session, err
	}
	found, err := s.load(r.Context(), session)
	if err != nil {
		return session, err
	}
	session.IsNew = !found
	return session, nil
}

// Save writes the values to Redis and sets the cookie. MaxAge <= 0 deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge <= 0 {
		if err := s.Delete(r.Context(), session.ID); err != nil {
			return err
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
	}
	if err := s.save(r.Context(), session); err != nil {
		return err
	}
	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// Delete removes the server-side values for id. The cookie is left alone.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.Client.Del(ctx, key(id)).Err()
}

func (s *RedisStore) save(ctx context.Context, session *sessions.Session) error {
	b, err := s.serializer().Serialize(session.Values)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	return s.Client.Set(ctx, key(session.ID), b, ttl).Err()
}

func (s *RedisStore) load(ctx context.Context, session *sessions.Session) (bool, error) {
	b, err := s.Client.Get(ctx, key(session.ID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.serializer().Deserialize(b, &session.Values); err != nil {
		return false, fmt.Errorf("decode session: %w", err)
	}
	return true, nil
}

func (s *RedisStore) serializer() securecookie.Serializer {
	if s.Serializer == nil {
		return securecookie.GobEncoder{}
	}
	return s.Serializer
}

func key(id string) string { return fmt.Sprintf(redisx.KeySession, id) }
