package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/coachup/coaching-api/internal/config"
	"github.com/coachup/coaching-api/internal/database"
	"github.com/coachup/coaching-api/internal/handler"
	"github.com/coachup/coaching-api/internal/logging"
	"github.com/coachup/coaching-api/internal/metrics"
	"github.com/coachup/coaching-api/internal/middleware"
	"github.com/coachup/coaching-api/internal/observability"
	"github.com/coachup/coaching-api/internal/queue"
	"github.com/coachup/coaching-api/internal/repository"
	"github.com/coachup/coaching-api/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Closer()

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "")
	if err != nil {
		lg.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flushSentry()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, database.Pool{
		MaxOpen:  cfg.DBMaxOpenConns,
		MaxIdle:  cfg.DBMaxIdleConns,
		LifeMins: cfg.DBConnLifeMin,
	})
	if err != nil {
		lg.Sugar.Fatalw("open database", "err", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		lg.Sugar.Fatalw("run migrations", "err", err)
	}

	// Periodic connectivity check feeding the db ping histogram.
	go func() {
		for range time.Tick(30 * time.Second) {
			start := time.Now()
			if err := db.Ping(); err != nil {
				lg.Sugar.Warnw("db ping failed", "err", err)
				continue
			}
			metrics.ObserveDBPing(time.Since(start))
		}
	}()

	// Repositories.
	users := repository.NewUserRepo(db)
	skills := repository.NewSkillRepo(db)
	credits := repository.NewCreditRepo(db)
	bookings := repository.NewBookingRepo(db)
	courses := repository.NewCourseRepo(db)
	coaches := repository.NewCoachRepo(db)
	revenue := repository.NewRevenueRepo(db)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users)
	userH := handler.NewUserHandler(cfg, users, credits, bookings)
	creditH := handler.NewCreditPackageHandler(credits)
	skillH := handler.NewSkillHandler(skills)
	coachH := handler.NewCoachHandler(coaches, courses)
	courseH := handler.NewCourseHandler(courses, bookings, users)
	adminH := handler.NewAdminHandler(users, coaches, courses, revenue)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(lg.Base))
	e.Use(middleware.CaptureErrors(observability.CaptureErr))

	// Redis backs the public-route response cache and the rate limiter.
	// Both middlewares degrade to pass-through when redis is down, so a
	// nil client only costs the optimization.
	var cacheMW echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	} else {
		lg.Sugar.Warnw("redis unavailable, cache and rate limiting disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterUsers(e, authH, userH, cfg.JWTSecret)
	router.RegisterPublic(e, coachH, skillH, creditH, courseH, cacheMW)
	router.RegisterBooking(e, creditH, courseH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, skillH, creditH, cfg.JWTSecret)

	// Booking audit consumer runs for the lifetime of the process and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			lg.Sugar.Errorw("booking consumer stopped", "err", err)
		}
	}()

	addr := ":" + cfg.Port
	lg.Sugar.Infow("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		lg.Sugar.Fatalw("server stopped", "err", err)
	}
}
