package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/smartentrance/backend/internal/adapters/handler/http"
	"github.com/smartentrance/backend/internal/adapters/repository/postgres"
	"github.com/smartentrance/backend/internal/core/services"
)

const defaultRememberWindow = 30 * 24 * time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		log.Println("Warning: JWT_SECRET not set")
	}
	rememberWindow := rememberWindowFromEnv()

	buildingRepo := postgres.NewBuildingRepository(db)
	unitRepo := postgres.NewUnitRepository(db)
	userRepo := postgres.NewUserRepository(db)
	pollRepo := postgres.NewPollRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	revocationRepo := postgres.NewRevocationRepository(db)

	revoker := services.NewRevocationService(revocationRepo, rememberWindow)

	// The in-memory revocation index does not survive a restart; warm
	// it from the durable log before serving any authentication checks.
	snapshot, err := revocationRepo.LoadAll(context.Background())
	if err != nil {
		log.Fatalf("failed to load revocations: %v", err)
	}
	revoker.LoadRevocations(snapshot)

	access := services.NewAccessControl(buildingRepo, unitRepo, pollRepo)
	pollService := services.NewPollService(pollRepo, voteRepo)
	voteService := services.NewVoteService(pollRepo, unitRepo, voteRepo, pollService, access)
	authService := services.NewAuthService(userRepo, revoker, jwtSecret, rememberWindow)

	authHandler := http.NewAuthHandler(authService)
	pollHandler := http.NewPollHandler(pollService, access)
	voteHandler := http.NewVoteHandler(voteService)

	handler := http.NewHandler(authHandler, pollHandler, voteHandler, jwtSecret, revoker)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	server := &stdhttp.Server{Addr: addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func rememberWindowFromEnv() time.Duration {
	raw := os.Getenv("REMEMBER_ME_EXPIRATION_MS")
	if raw == "" {
		return defaultRememberWindow
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms <= 0 {
		log.Printf("invalid REMEMBER_ME_EXPIRATION_MS %q, using default", raw)
		return defaultRememberWindow
	}
	return time.Duration(ms) * time.Millisecond
}

func dbConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
}
