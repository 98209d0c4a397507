package main // Entry point package

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/homestay-ledger/internal/config"
	"github.com/iliyamo/homestay-ledger/internal/database"
	"github.com/iliyamo/homestay-ledger/internal/handler"
	"github.com/iliyamo/homestay-ledger/internal/ledger"
	"github.com/iliyamo/homestay-ledger/internal/model"
	"github.com/iliyamo/homestay-ledger/internal/queue"
	"github.com/iliyamo/homestay-ledger/internal/repository"
	"github.com/iliyamo/homestay-ledger/internal/router"
	"github.com/iliyamo/homestay-ledger/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	admin := model.NormalizeAddress(cfg.AdminAddress)
	treasury := model.NormalizeAddress(cfg.TreasuryAddr)
	policy := ledger.ParseCheckoutPolicy(cfg.CheckoutPolicy)

	var (
		led    ledger.Ledger
		users  *repository.UserRepo
		tokens *repository.TokenRepo
	)
	switch cfg.Backend {
	case "mysql":
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		led = ledger.NewStore(db, ledger.StoreConfig{
			Admin:    admin,
			Treasury: treasury,
			Policy:   policy,
		})
		users = repository.NewUserRepo(db)
		tokens = repository.NewTokenRepo(db)
	case "memory":
		led = ledger.NewMemory(ledger.MemoryConfig{
			Admin:    admin,
			Treasury: treasury,
			Policy:   policy,
		})
	default:
		log.Fatalf("unknown LEDGER_BACKEND %q (want memory or mysql)", cfg.Backend)
	}
	led = ledger.WithLogging(led)

	if cfg.DemoMode {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := ledger.SeedDemo(ctx, led); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
		cancel()
		log.Printf("demo mode: %d accounts funded", len(ledger.DemoAccounts))
	}

	var publisher *service.QueuePublisher
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		publisher = service.NewQueuePublisher(url)
		go func() {
			if err := queue.StartPayoutConsumer(); err != nil {
				log.Printf("payout consumer stopped: %v", err)
			}
		}()
	}

	// Redis backs the public-route cache and rate limiter; nil disables both.
	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	authH := handler.NewAuthHandler(cfg, users, tokens, admin)
	hostH := handler.NewHostHandler(led)
	bookH := handler.NewBookingHandler(led, publisher)
	reviewH := handler.NewReviewHandler(led)
	browseH := handler.NewBrowseHandler(led)
	walletH := handler.NewWalletHandler(led, cfg.DemoMode)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, cfg.DemoMode)
	router.RegisterPublic(e, browseH, reviewH, rdb)
	router.RegisterHost(e, hostH, cfg.JWTSecret)
	router.RegisterGuest(e, bookH, reviewH, walletH, cfg.JWTSecret)
	router.RegisterAdmin(e, hostH, reviewH, cfg.JWTSecret, admin)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s backend=%s)", addr, cfg.Env, cfg.Backend)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
