// Command migrate applies the embedded SQL migrations to DB_ADDR.
package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"bazaar/internal/db"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Infow("no .env file loaded, using process environment", "error", err.Error())
	}

	addr := os.Getenv("DB_ADDR")
	if addr == "" {
		logger.Fatal("DB_ADDR is not set")
	}

	conn, err := sql.Open("postgres", addr)
	if err != nil {
		logger.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		logger.Fatalw("database unreachable", "error", err.Error())
	}

	applied, err := db.Migrate(ctx, conn)
	for _, name := range applied {
		logger.Infow("migration applied", "file", name)
	}
	if err != nil {
		logger.Fatalw("migration failed", "error", err.Error())
	}
	if len(applied) == 0 {
		logger.Info("schema is up to date")
	}
}
