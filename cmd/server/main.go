package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/medbook/appointment-api/internal/config"
	"github.com/medbook/appointment-api/internal/database"
	"github.com/medbook/appointment-api/internal/handler"
	"github.com/medbook/appointment-api/internal/middleware"
	"github.com/medbook/appointment-api/internal/queue"
	"github.com/medbook/appointment-api/internal/repository"
	"github.com/medbook/appointment-api/internal/router"
	"github.com/medbook/appointment-api/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	log.Println("connected to mysql")

	users := repository.NewUserRepo(db)
	appts := repository.NewAppointmentRepo(db)

	authH := handler.NewAuthHandler(cfg, users)
	apptH := handler.NewAppointmentHandler(users, appts, service.NewPublisher())

	e := echo.New()
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.Register(e, authH, apptH, cfg.JWTSecret, users)

	go func() {
		if err := queue.StartAppointmentConsumer(); err != nil {
			log.Printf("appointment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
