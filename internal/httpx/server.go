package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/logging"
	"github.com/ariefcatur/queencare-api/internal/metrics"
	"github.com/ariefcatur/queencare-api/internal/redisx"
	"github.com/ariefcatur/queencare-api/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Orders       OrderService
	Appointments AppointmentService
	Users        UserService
	Catalog      CatalogReader
	Sessions     *session.Manager
	Cache        *redisx.Cache
	Log          logrus.FieldLogger

	CORSOrigins []string
	Timeout     time.Duration
	StaticDir   string
}

func NewRouter(d Deps) *chi.Mux {
	if d.Timeout <= 0 {
		d.Timeout = 15 * time.Second
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logging.Requests(d.Log), middleware.Recoverer)
	r.Use(instrument)
	r.Use(middleware.Timeout(d.Timeout))
	r.Use(cors.Handler(corsOptions(d.CORSOrigins)))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(d.Sessions.Middleware)

		(&AuthHandler{Users: d.Users, Sessions: d.Sessions, Log: d.Log}).Register(api)
		(&CatalogHandler{Catalog: d.Catalog, Cache: d.Cache, Log: d.Log}).Register(api)
		(&OrdersHandler{Svc: d.Orders, Log: d.Log}).Register(api)
		(&AppointmentsHandler{Svc: d.Appointments, Cache: d.Cache, Log: d.Log}).Register(api)

		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		})
	})

	if d.StaticDir != "" {
		r.NotFound(spa(d.StaticDir))
	}
	return r
}

// corsOptions only allows credentialed cross-origin calls from an explicit
// origin list. With a wildcard the session cookie stays same-origin.
func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key", "X-Request-Id"},
		AllowCredentials: len(origins) > 0 && !slices.Contains(origins, "*"),
		MaxAge:           300,
	}
}

// instrument records Prometheus request metrics labelled by route pattern.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.IncInFlight()
		defer metrics.DecInFlight()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			path = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordHTTPRequest(r.Method, path, status, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRawJSON(w http.ResponseWriter, code int, b []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

// writeError maps domain error kinds to status codes. Anything else is a 500
// carrying the raw error text.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.KindUnauthenticated, domain.KindInvalidCredentials:
		status = http.StatusUnauthorized
	case domain.KindInvalidInput:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindConflict:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError && log != nil {
		log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeJSON reads a JSON object body. An empty body decodes as {} so that
// missing fields surface as validation errors.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return domain.InvalidInput("Invalid JSON body")
	}
	return nil
}

// pathID parses the {id} URL param. Non-numeric ids cannot name a row, so
// they are reported with the caller's not-found message.
func pathID(r *http.Request, notFound string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NotFound(notFound)
	}
	return id, nil
}
