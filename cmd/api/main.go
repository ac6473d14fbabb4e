package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harikeerthpv07/BarterSystem/internal/app"
	"github.com/harikeerthpv07/BarterSystem/internal/auth"
	"github.com/harikeerthpv07/BarterSystem/internal/clock"
	"github.com/harikeerthpv07/BarterSystem/internal/config"
	"github.com/harikeerthpv07/BarterSystem/internal/storage/postgres"
	transporthttp "github.com/harikeerthpv07/BarterSystem/internal/transport/http"
	"github.com/harikeerthpv07/BarterSystem/migrations"
)

func main() {
	logger := log.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	clk := clock.NewSystem()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL, clk)

	userRepo := postgres.NewUserRepository(pool)
	authSvc := app.NewAuthService(userRepo, tokens, clk)
	itemRepo := postgres.NewItemRepository(pool)
	itemSvc := app.NewItemService(itemRepo, clk)
	offerRepo := postgres.NewOfferRepository(pool)
	offerSvc := app.NewOfferService(offerRepo, clk)
	offerQueries := app.NewOfferQueryService(offerRepo)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/auth/signup", transporthttp.HandleSignup(authSvc))
	mux.Handle("/auth/login", transporthttp.HandleLogin(authSvc))
	mux.Handle("/items", transporthttp.HandleItems(itemSvc, tokens))
	mux.Handle("/items/", transporthttp.HandleItemByID(itemSvc, tokens))
	mux.Handle("/offers", transporthttp.HandleCreateOffer(offerSvc, tokens))
	mux.Handle("/offers/", transporthttp.HandleOfferRoutes(offerSvc, offerQueries, tokens))
	mux.Handle("/", transporthttp.NotFoundHandler())

	corsOrigins := parseCSV(cfg.CORSOrigins)
	handler := transporthttp.RequestLogger(transporthttp.CORS(corsOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
