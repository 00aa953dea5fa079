package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/exam-seating/internal/allocator"
	"github.com/iliyamo/exam-seating/internal/config"
	"github.com/iliyamo/exam-seating/internal/database"
	"github.com/iliyamo/exam-seating/internal/handler"
	"github.com/iliyamo/exam-seating/internal/middleware"
	"github.com/iliyamo/exam-seating/internal/queue"
	"github.com/iliyamo/exam-seating/internal/repository"
	"github.com/iliyamo/exam-seating/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate database: %v", err)
	}
	cancel()

	// repositories
	studentRepo := repository.NewStudentRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	allocationRepo := repository.NewAllocationRepo(db)
	activityRepo := repository.NewActivityRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// allocation engine over the transactional seating store; nil rng
	// means a time-seeded source
	engine := allocator.New(repository.NewSeatingStore(db, studentRepo, roomRepo), nil)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := &handler.PublicHandler{
		StudentRepo:    studentRepo,
		RoomRepo:       roomRepo,
		AllocationRepo: allocationRepo,
	}
	adminHandler := handler.NewAdminHandler(studentRepo, roomRepo, allocationRepo, activityRepo, engine)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// public lookups get the Redis response cache and rate limiter; the
	// seat lookup endpoint takes the brunt of traffic when results go out
	var publicMW []echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		publicMW = append(publicMW,
			middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
			middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		)
	}
	router.RegisterPublic(e, publicHandler, publicMW...)

	// background consumer writes allocation.completed events to the run log
	go func() {
		if err := queue.StartAllocationConsumer(); err != nil {
			log.Printf("allocation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
