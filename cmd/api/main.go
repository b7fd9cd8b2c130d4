package main

import (
	"expvar"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"bazaar/internal/auth"
	"bazaar/internal/db"
	"bazaar/internal/domain/storage"
	"bazaar/internal/ratelimiter"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(logger *zap.SugaredLogger, key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warnw("invalid integer in env, using default", "key", key, "default", fallback)
		return fallback
	}
	return n
}

// LoadRateLimiterConfig reads RATELIMITER_REQUESTS_COUNT and RATE_LIMITER_ENABLED.
func LoadRateLimiterConfig(logger *zap.SugaredLogger) ratelimiter.Config {
	enabled := false
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsed, err := strconv.ParseBool(val); err == nil {
			enabled = parsed
		} else {
			logger.Warnw("invalid RATE_LIMITER_ENABLED, using default", "default", enabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: envInt(logger, "RATELIMITER_REQUESTS_COUNT", 20),
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

// NewLogger creates a console logger with colored levels.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)

	return zap.New(core).Sugar(), nil
}

var version = "0.1.0"

//	@title			Bazaar API
//	@description	B2B marketplace where sellers list raw materials and shopkeepers order them.

//	@contact.name	API Support

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token; browsers send the `token` cookie instead.
//	@securityDefinitions.basic	BasicAuth

func main() {
	logger, err := NewLogger()
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Infow("no .env file loaded, using process environment", "error", err.Error())
	}

	cfg := config{
		addr:   envOr("ADDR", ":8080"),
		env:    envOr("ENV", "development"),
		apiURL: envOr("EXTERNAL_URL", "localhost:8080"),
		db: dbConfig{
			addr:         os.Getenv("DB_ADDR"),
			maxOpenConns: envInt(logger, "DB_MAX_OPEN_CONNS", 30),
			maxIdleTime:  envOr("DB_MAX_IDLE_TIME", "15m"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret: os.Getenv("AUTH_TOKEN_SECRET"),
				exp:    auth.TokenTTL,
				iss:    auth.Issuer,
			},
		},
		orders: ordersConfig{
			refSalt: envOr("ORDER_REF_SALT", "bazaar"),
		},
		cors: corsConfig{
			allowedOrigins: strings.Split(envOr("CORS_ALLOWED_ORIGIN", "http://localhost:3000"), ","),
		},
		rateLimiter: LoadRateLimiterConfig(logger),
	}

	if cfg.auth.token.secret == "" {
		logger.Fatal("AUTH_TOKEN_SECRET is not set, refusing to start")
	}

	pool, err := db.New(cfg.db.addr, int32(cfg.db.maxOpenConns), cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	app, err := newApplication(cfg, storage.NewContainer(pool), logger)
	if err != nil {
		logger.Fatal(err)
	}

	// http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		s := pool.Stat()
		return map[string]int32{
			"total_conns":    s.TotalConns(),
			"idle_conns":     s.IdleConns(),
			"acquired_conns": s.AcquiredConns(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
