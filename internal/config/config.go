package config

import "os"

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	FeedPath    string
}

func Load() Config {
	return Config{
		Addr:        envOr("SNOWGEAR_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		FeedPath:    envOr("FEED_PATH", "scripts/feed.normalized.json"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
