package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/postgres"
	"github.com/jackc/pgx/v5"
)

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64 // SYP
	ImageURL    string
	Category    string
	CreatedAt   time.Time
}

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		ImageURL    string  `json:"image_url"`
		Category    string  `json:"category"`
		CreatedAt   *string `json:"created_at"`
	}{p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Category, domain.FormatTimestamp(p.CreatedAt)})
}

// Repo is read-only: the catalog is maintained by seeding and back-office tools.
type Repo struct{ DB postgres.DB }

const productColumns = `id, name, description, price, image_url, category, created_at`

// ListProducts returns every product, or only those in category when it is non-empty.
func (r *Repo) ListProducts(ctx context.Context, category string) ([]Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if category == "" {
		rows, err = r.DB.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	} else {
		rows, err = r.DB.Query(ctx, `SELECT `+productColumns+` FROM products WHERE category=$1 ORDER BY id`, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Product(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, domain.NotFound("Product not found")
	}
	return p, err
}

func (r *Repo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
