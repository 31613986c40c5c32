package users

import (
	"context"
	"errors"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	ByEmail(ctx context.Context, email string) (User, error)
	ByID(ctx context.Context, id int64) (User, error)
}

type Repo struct{ DB postgres.DB }

var _ Repository = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, u User) (User, error) {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users(name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`, u.Name, u.Email, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return User{}, domain.Conflict("Email already registered")
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *Repo) ByEmail(ctx context.Context, email string) (User, error) {
	return r.one(ctx, `SELECT id, name, email, password_hash, created_at FROM users WHERE email=$1`, email)
}

func (r *Repo) ByID(ctx context.Context, id int64) (User, error) {
	return r.one(ctx, `SELECT id, name, email, password_hash, created_at FROM users WHERE id=$1`, id)
}

func (r *Repo) one(ctx context.Context, sql string, arg any) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, domain.NotFound("User not found")
	}
	return u, err
}
