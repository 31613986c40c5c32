package users

import (
	"encoding/json"
	"time"

	"github.com/ariefcatur/queencare-api/internal/domain"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        int64   `json:"id"`
		Name      string  `json:"name"`
		Email     string  `json:"email"`
		CreatedAt *string `json:"created_at"`
	}{u.ID, u.Name, u.Email, domain.FormatTimestamp(u.CreatedAt)})
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
