package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/queencare-api/internal/catalog"
	"github.com/ariefcatur/queencare-api/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type CatalogReader interface {
	ListProducts(ctx context.Context, category string) ([]catalog.Product, error)
	Product(ctx context.Context, id int64) (catalog.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type CatalogHandler struct {
	Catalog CatalogReader
	Cache   *redisx.Cache
	Log     logrus.FieldLogger
}

func (h *CatalogHandler) Register(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/categories", h.listCategories)
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Catalog.ListProducts(ctx, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": ps})
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Product not found")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Catalog.Product(ctx, id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if b, ok := h.Cache.Get(ctx, redisx.KeyCategoriesCache); ok {
		writeRawJSON(w, http.StatusOK, b)
		return
	}

	cs, err := h.Catalog.Categories(ctx)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	b, err := json.Marshal(map[string]any{"categories": cs})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.Cache.Set(ctx, redisx.KeyCategoriesCache, b, redisx.TTLListCache)
	writeRawJSON(w, http.StatusOK, b)
}
