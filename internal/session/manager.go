package session

import (
	"context"
	"net/http"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

const userIDKey = "user_id"

// Manager binds the session cookie to a caller identity.
type Manager struct {
	Store sessions.Store
	Name  string
	Log   logrus.FieldLogger
}

// Identity reads the caller from the session. Any session error yields an
// anonymous identity.
func (m *Manager) Identity(r *http.Request) domain.Identity {
	s, err := m.Store.Get(r, m.Name)
	if err != nil {
		return domain.Identity{}
	}
	switch v := s.Values[userIDKey].(type) {
	case int64:
		return domain.Identity{UserID: v}
	case int:
		return domain.Identity{UserID: int64(v)}
	}
	return domain.Identity{}
}

// deleter is implemented by stores that keep values server-side.
type deleter interface {
	Delete(ctx context.Context, id string) error
}

// Login binds userID to a fresh session. Whatever session the request
// arrived with is discarded, so an id issued before login never becomes
// authenticated.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID int64) error {
	s, _ := m.Store.Get(r, m.Name)
	if d, ok := m.Store.(deleter); ok && s.ID != "" {
		if err := d.Delete(r.Context(), s.ID); err != nil {
			return err
		}
	}
	s.ID = ""
	s.IsNew = true
	s.Values = map[interface{}]interface{}{userIDKey: userID}
	return s.Save(r, w)
}

func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.Store.Get(r, m.Name)
	delete(s.Values, userIDKey)
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

// Middleware resolves the identity once per request and stores it in the context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := m.Identity(r)
		if m.Log != nil && id.Authenticated() {
			m.Log.WithField("user_id", id.UserID).Debug("session resolved")
		}
		next.ServeHTTP(w, r.WithContext(domain.WithIdentity(r.Context(), id)))
	})
}
