package users

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/events"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	Repo   Repository
	Events *events.Emitter
	// Cost defaults to bcrypt.DefaultCost; tests lower it.
	Cost int
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return User{}, domain.InvalidInput("Name, email, and password are required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return User{}, domain.InvalidInput("Invalid email address")
	}
	if len(in.Password) < 6 {
		return User{}, domain.InvalidInput("Password must be at least 6 characters")
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return User{}, err
	}
	u, err := s.Repo.Create(ctx, User{Name: in.Name, Email: in.Email, PasswordHash: string(hash)})
	if err != nil {
		return User{}, err
	}
	s.Events.Emit(ctx, events.TopicUserRegistered, events.EventUserRegistered, strconv.FormatInt(u.ID, 10),
		events.UserRegisteredPayload{UserID: u.ID, Email: u.Email})
	return u, nil
}

// Login never says whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, in LoginInput) (User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return User{}, domain.InvalidInput("Email and password are required")
	}
	u, err := s.Repo.ByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return User{}, domain.ErrInvalidCredentials
	}
	return u, nil
}

// Me loads the caller's user row. A session pointing at a removed user
// surfaces here as not found.
func (s *Service) Me(ctx context.Context, caller domain.Identity) (User, error) {
	if err := caller.Require(); err != nil {
		return User{}, err
	}
	return s.Repo.ByID(ctx, caller.UserID)
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
