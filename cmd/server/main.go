package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"medical-booking-api/internal/archive"
	"medical-booking-api/internal/booking"
	"medical-booking-api/internal/middleware"
	"medical-booking-api/internal/server"
)

func main() {
	_ = godotenv.Load()
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	port := env("PORT", "3000")
	rps, err := strconv.ParseFloat(env("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		log.Fatal().Err(err).Msg("RATE_LIMIT_RPS")
	}
	burst, err := strconv.Atoi(env("RATE_LIMIT_BURST", "10"))
	if err != nil {
		log.Fatal().Err(err).Msg("RATE_LIMIT_BURST")
	}

	// archive mirror, only when a database is configured
	var arch *archive.Store
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := pgxpool.New(context.Background(), dbURL)
		if err != nil {
			log.Fatal().Err(err).Msg("db")
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("db ping")
		}
		log.Info().Msg("connected to postgres")

		// run migrations
		if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
			log.Warn().Err(err).Msg("migration file not found, skipping")
		} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
			log.Warn().Err(err).Msg("migration")
		} else {
			log.Info().Msg("migration applied")
		}

		arch = archive.New(pool)
	} else {
		log.Info().Msg("DATABASE_URL not set, archive disabled")
	}

	// booking engine
	registry := booking.NewRegistry()
	directory := booking.NewDirectory(booking.DefaultDoctors()...)
	scheduler := booking.NewScheduler(registry, directory)
	srv := server.New(registry, directory, scheduler, arch, log)

	rl := middleware.NewRateLimiter(rps, burst)
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.RateLimit(rl))
	r.Route("/api", func(r chi.Router) {
		server.RegisterRoutes(r, srv)
	})

	httpSrv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	go func() {
		log.Info().Str("addr", httpSrv.Addr).Msg("http listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
