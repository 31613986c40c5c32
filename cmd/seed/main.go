package main

import (
	"context"
	"time"

	"github.com/ariefcatur/queencare-api/internal/config"
	"github.com/ariefcatur/queencare-api/internal/logging"
	"github.com/ariefcatur/queencare-api/internal/postgres"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
		log.WithError(err).Fatal("migrate")
	}
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.WithError(err).Fatal("db connect")
	}
	defer db.Close()

	res, err := postgres.Seed(ctx, db)
	if err != nil {
		log.WithError(err).Fatal("seed")
	}
	log.WithFields(logrus.Fields{"products": res.Products, "doctors": res.Doctors}).Info("seed complete")
}
