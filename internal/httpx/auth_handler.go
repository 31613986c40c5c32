package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/session"
	"github.com/ariefcatur/queencare-api/internal/users"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type UserService interface {
	Signup(ctx context.Context, in users.SignupInput) (users.User, error)
	Login(ctx context.Context, in users.LoginInput) (users.User, error)
	Me(ctx context.Context, caller domain.Identity) (users.User, error)
}

type AuthHandler struct {
	Users    UserService
	Sessions *session.Manager
	Log      logrus.FieldLogger
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
		r.Get("/me", h.me)
		r.Get("/check-auth", h.checkAuth)
	})
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var in users.SignupInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Signup(ctx, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Sessions.Login(w, r, u.ID); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "User created successfully", "user": u})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var in users.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Login(ctx, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Sessions.Login(w, r, u.ID); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Login successful", "user": u})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(w, r); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	u, err := h.Users.Me(ctx, domain.IdentityFrom(ctx))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (h *AuthHandler) checkAuth(w http.ResponseWriter, r *http.Request) {
	id := domain.IdentityFrom(r.Context())
	if !id.Authenticated() {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "user_id": id.UserID})
}
