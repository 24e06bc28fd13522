package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/lexisware/portfolio-backend/internal/auth"
	"github.com/lexisware/portfolio-backend/internal/config"
	"github.com/lexisware/portfolio-backend/internal/database"
	"github.com/lexisware/portfolio-backend/internal/handler"
	"github.com/lexisware/portfolio-backend/internal/queue"
	"github.com/lexisware/portfolio-backend/internal/repository"
	"github.com/lexisware/portfolio-backend/internal/router"
	"github.com/lexisware/portfolio-backend/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	advisories := repository.NewAdvisoryRepo(db)
	portfolios := repository.NewPortfolioRepo(db)
	projects := repository.NewProjectRepo(db)
	stats := repository.NewStatsRepo(db)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	publisher := queue.NewPublisher()
	advisorySvc := service.NewAdvisoryService(advisories, publisher)

	// Background workers: mail delivery off the queue and the daily
	// reminder sweep.  Both run for the life of the process.
	go func() {
		if err := queue.StartMailConsumer(); err != nil {
			log.Printf("mail consumer stopped: %v", err)
		}
	}()
	go service.StartDailyReminders(advisories, publisher)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, users, tokens, publisher),
		Users:      handler.NewUserHandler(users),
		Portfolios: handler.NewPortfolioHandler(portfolios),
		Projects:   handler.NewProjectHandler(projects, users),
		Advisories: handler.NewAdvisoryHandler(advisorySvc, users),
		Dashboard:  handler.NewDashboardHandler(stats),
		Reports:    handler.NewReportHandler(advisorySvc),
	}, tokens, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
