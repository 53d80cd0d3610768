// Command ingest runs a one-shot feed import: it reads the normalized feed
// file and upserts merchants, products and attribute bags.
package main

import (
	"database/sql"
	"flag"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/powderline/snowgear-backend/internal/config"
	"github.com/powderline/snowgear-backend/internal/ingest"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	feedPath := flag.String("feed", cfg.FeedPath, "path to the normalized feed file")
	flag.Parse()

	if cfg.DatabaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is not set")
	}
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("could not reach database")
	}

	if err := ingest.EnsureSchema(db); err != nil {
		logger.Fatal().Err(err).Msg("could not ensure catalog schema")
	}

	if _, err := ingest.NewLoader(db, logger).LoadFile(*feedPath); err != nil {
		logger.Fatal().Err(err).Msg("feed import failed")
	}
}
