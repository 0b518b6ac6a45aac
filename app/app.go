package app

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"libstack/db"
	"libstack/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Aliases so handlers can write app.Ctx / app.H.
type Ctx = gin.Context
type H = gin.H

// App aggregates the shared dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	appSess *session.AppSessionStore
}

type Config struct {
	RedisAddr  string
	RedisPwd   string
	WebOrigin  string
	SessionTTL time.Duration

	// Lending policy, surfaced from env so tests and deployments can vary
	// the limits without touching code.
	MaxActiveLoans int
	LoanPeriodDays int

	BootstrapAdminEmail string
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

func (a *App) LoanPolicy() db.LoanPolicy {
	return db.LoanPolicy{MaxActiveLoans: a.Config.MaxActiveLoans, LoanPeriodDays: a.Config.LoanPeriodDays}
}

func MustNew() *App {
	cfg := loadConfig()

	dbConn := db.ConnectDB()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	return &App{
		Router: r, DB: dbConn, RDB: rdb, Config: cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	getInt := func(k string, def int) int {
		if n, err := strconv.Atoi(os.Getenv(k)); err == nil && n > 0 {
			return n
		}
		return def
	}

	ttl := 24 * time.Hour
	if d, err := time.ParseDuration(get("SESSION_TTL_SECONDS", "86400") + "s"); err == nil {
		ttl = d
	}

	return Config{
		RedisAddr:  get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:   os.Getenv("REDIS_PASSWORD"),
		WebOrigin:  get("WEB_ORIGIN", "http://localhost:5173"),
		SessionTTL: ttl,

		MaxActiveLoans: getInt("LOAN_MAX_ACTIVE", 5),
		LoanPeriodDays: getInt("LOAN_PERIOD_DAYS", 14),

		BootstrapAdminEmail: os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
	}
}
