package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/cphva/cphva-connect/internal/config"
	"github.com/cphva/cphva-connect/internal/database"
	"github.com/cphva/cphva-connect/internal/handler"
	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/queue"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/repository/memory"
	"github.com/cphva/cphva-connect/internal/repository/sqlite"
	"github.com/cphva/cphva-connect/internal/router"
	"github.com/cphva/cphva-connect/internal/service"
	"github.com/cphva/cphva-connect/internal/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := seedAdmin(cfg, store); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	if cfg.AMQPURL != "" {
		go func() {
			if err := queue.StartCheckInConsumer(cfg.AMQPURL); err != nil {
				log.Printf("checkin consumer stopped: %v", err)
			}
		}()
	}

	tickets := service.NewTicketService(store, cfg.BcryptCost)
	checkIn := service.NewCheckInService(store, cfg.AMQPURL)
	reports := service.NewReportService(store)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}

	router.Register(e, cfg, router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, store),
		Users:       handler.NewUserHandler(cfg, store),
		Tickets:     handler.NewTicketHandler(store, tickets),
		TicketTypes: handler.NewTicketTypeHandler(store),
		CheckIn:     handler.NewCheckInHandler(checkIn),
		Speakers:    handler.NewSpeakerHandler(store),
		Locations:   handler.NewLocationHandler(store),
		Schedule:    handler.NewScheduleHandler(store),
		Exhibitors:  handler.NewExhibitorHandler(store),
		Polls:       handler.NewPollHandler(store),
		Settings:    handler.NewSettingsHandler(store),
		Reports:     handler.NewReportHandler(reports),
	}, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s backend=%s)", addr, cfg.Env, cfg.DataBackend)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

func openStore(cfg config.Config) (repository.Store, error) {
	if cfg.DataBackend == config.BackendMemory {
		log.Println("using in-memory backend; data will not survive a restart")
		return memory.NewStore(), nil
	}
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(db), nil
}

// seedAdmin creates the bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured and the account does not already
// exist.
func seedAdmin(cfg config.Config, store repository.Store) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := store.Users().GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	u := model.User{
		ID:           utils.NewID(),
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.Users().Create(ctx, &u); err != nil {
		return err
	}
	log.Printf("seeded admin account %s", cfg.AdminEmail)
	return nil
}
