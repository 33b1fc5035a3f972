package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stockpilot/backend/internal/auth"
	"stockpilot/backend/internal/cache"
	"stockpilot/backend/internal/config"
	"stockpilot/backend/internal/db"
	"stockpilot/backend/internal/repository"
	"stockpilot/backend/internal/server"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	resetFlag       = flag.Bool("reset", false, "Drop all tables, remigrate, and reseed")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	if *migrateOnlyFlag {
		if _, err := db.ConnectAndMigrate(cfg.DatabaseDSN); err != nil {
			log.Fatalf("migrate-only failed: %v", err)
		}
		log.Println("migrations completed; exiting as requested")
		return
	}

	conn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if *resetFlag {
		if err := db.Reset(conn); err != nil {
			log.Fatalf("reset failed: %v", err)
		}
		log.Println("database reset; exiting as requested")
		return
	}
	log.Printf("Starting server env=%s port=%s", cfg.Env, cfg.Port)

	if cfg.AuthSecret == "" {
		log.Fatal("AUTH_SECRET is required")
	}

	var closers []io.Closer
	var summaryCache cache.SummaryCache = cache.NoopSummaryCache{}
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisSummaryCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Printf("redis unreachable at %s, running without cache: %v", cfg.RedisAddr, err)
			_ = rc.Close()
		} else {
			summaryCache = rc
			closers = append(closers, rc)
		}
	}

	users := repository.NewUserRepository(conn)
	manager := auth.NewManager(cfg.AuthSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, users)

	handler := server.New(server.Deps{
		DB:         conn,
		Auth:       manager,
		Summary:    summaryCache,
		SummaryTTL: time.Duration(cfg.SummaryTTLSeconds) * time.Second,
	})
	srv := &http.Server{Addr: cfg.Address(), Handler: handler}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Printf("Error closing resource: %v", err)
		}
	}
	log.Println("Server gracefully stopped")
}
