package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/queencare-api/internal/appointments"
	"github.com/ariefcatur/queencare-api/internal/catalog"
	"github.com/ariefcatur/queencare-api/internal/config"
	"github.com/ariefcatur/queencare-api/internal/events"
	"github.com/ariefcatur/queencare-api/internal/httpx"
	kafkax "github.com/ariefcatur/queencare-api/internal/kafka"
	"github.com/ariefcatur/queencare-api/internal/logging"
	"github.com/ariefcatur/queencare-api/internal/orders"
	"github.com/ariefcatur/queencare-api/internal/postgres"
	"github.com/ariefcatur/queencare-api/internal/redisx"
	"github.com/ariefcatur/queencare-api/internal/session"
	"github.com/ariefcatur/queencare-api/internal/users"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat).WithField("service", cfg.ServiceName)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
		log.WithError(err).Fatal("migrate")
	}
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.WithError(err).Fatal("db connect")
	}
	defer db.Close()

	if cfg.SeedOnStart {
		res, err := postgres.Seed(ctx, db)
		if err != nil {
			log.WithError(err).Fatal("seed")
		}
		log.WithFields(logrus.Fields{"products": res.Products, "doctors": res.Doctors}).Info("seeded")
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr, cfg.RedisPassword)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("redis ping")
	}

	// Kafka producer, only when brokers are configured
	emitter := &events.Emitter{Producer: cfg.ServiceName, Log: log}
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, 1024, log)
		prod.Start(ctx)
		emitter.Sink = prod
	} else {
		log.Warn("KAFKA_BROKERS not set, domain events disabled")
	}

	// Services & router
	sessMgr := &session.Manager{
		Store: session.NewRedisStore(rdb, &sessions.Options{
			Path:     "/",
			MaxAge:   cfg.SessionMaxAge,
			HttpOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		}, []byte(cfg.SessionSecret)),
		Name: "queencare_session",
		Log:  log,
	}
	router := httpx.NewRouter(httpx.Deps{
		Orders:       &orders.Service{Repo: &orders.Repo{DB: db}, Events: emitter, Log: log},
		Appointments: &appointments.Service{Repo: &appointments.Repo{DB: db}, Events: emitter, Log: log},
		Users:        &users.Service{Repo: &users.Repo{DB: db}, Events: emitter},
		Catalog:      &catalog.Repo{DB: db},
		Sessions:     sessMgr,
		Cache:        &redisx.Cache{Client: rdb},
		Log:          log,
		CORSOrigins:  cfg.CORSOrigins,
		Timeout:      cfg.RequestTimeout,
		StaticDir:    cfg.StaticDir,
	})

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	// graceful shutdown
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen")
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if prod != nil {
		prod.Close()      // close inbox -> flush & close writer
		cancel()          // stop producer loop
		prod.WaitClosed() // drain
	}
}
