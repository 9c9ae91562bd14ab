package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gamevault/internal/app"
	"gamevault/internal/audit"
	"gamevault/internal/auth"
	"gamevault/internal/config"
	"gamevault/internal/http"
	"gamevault/pkg/password"
	"gamevault/pkg/rbac"
	"gamevault/pkg/rbac/presets"

	"github.com/joho/godotenv"
)

const (
	envFilePath      = ".env"
	serverAddrPrefix = ":"
	signalBufferSize = 1
	logOutputFlags   = log.LstdFlags | log.Lshortfile
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

func main() {
	if err := godotenv.Load(envFilePath); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(logOutputFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := app.OpenStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close()

	log.Printf("Record store ready (backend: %s)", cfg.Database.Backend)

	hasher, err := password.NewHasher(cfg.Security.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to configure password hasher: %v", err)
	}

	checker := rbac.MustNew(presets.Collection())
	sessions := auth.NewManager(cfg.Session.TTL)
	defer sessions.Stop()

	server := http.NewServer(&http.ServerDependencies{
		Config:   cfg,
		Store:    store,
		Sessions: sessions,
		Checker:  checker,
		Hasher:   hasher,
		Audit:    audit.New(os.Stdout),
	})

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := server.Start(serverAddrPrefix + cfg.Server.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, signalBufferSize)
	signal.Notify(quit, shutdownSignals...)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
