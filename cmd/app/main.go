package main

import (
	"database/sql"
	"os"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/powderline/snowgear-backend/internal/brand"
	"github.com/powderline/snowgear-backend/internal/catalog"
	"github.com/powderline/snowgear-backend/internal/config"
	"github.com/powderline/snowgear-backend/internal/ingest"
	"github.com/powderline/snowgear-backend/internal/outbound"
	"github.com/powderline/snowgear-backend/internal/quiz"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	app := fiber.New(fiber.Config{
		JSONEncoder: gojson.Marshal,
		JSONDecoder: gojson.Unmarshal,
	})
	setupCORS(app)
	app.Use(requestLogger(logger))

	db := mustOpenDB(cfg.DatabaseURL, logger)
	defer db.Close()

	if err := ingest.EnsureSchema(db); err != nil {
		logger.Fatal().Err(err).Msg("could not ensure catalog schema")
	}

	// public read surface: catalog queries, brand choices, quiz
	// recommendations, outbound redirects
	catalogHandler := catalog.NewHandler(catalog.NewService(catalog.NewPostgresRepository(db)))
	catalogHandler.RegisterPublicRoutes(app)

	brandHandler := brand.NewHandler(brand.NewService(brand.NewPostgresRepository(db)))
	brandHandler.RegisterPublicRoutes(app)

	quizHandler := quiz.NewHandler(quiz.NewService(quiz.NewPostgresRepository(db)))
	quizHandler.RegisterPublicRoutes(app)

	outboundHandler := outbound.NewHandler(outbound.NewService(outbound.NewPostgresRepository(db)))
	outboundHandler.RegisterPublicRoutes(app)

	// everything below requires a JWT; GETs stay public
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Filter: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodGet
		},
	}))

	// dev-only endpoint to re-run the feed import in-process, enabled when
	// ALLOW_FEED_RELOAD=1
	app.Post("/dev/reload-feed", func(c *fiber.Ctx) error {
		if os.Getenv("ALLOW_FEED_RELOAD") != "1" {
			return c.Status(fiber.StatusForbidden).SendString("reload not allowed")
		}
		n, err := ingest.NewLoader(db, logger).LoadFile(cfg.FeedPath)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		return c.JSON(fiber.Map{"upserted": n})
	})

	logger.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info().
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}

func mustOpenDB(dbURL string, logger zerolog.Logger) *sql.DB {
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not open database")
	}
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("could not reach database")
	}
	return db
}
