// Package main is the entry point for the harborcms server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"harborcms/internal/acl"
	"harborcms/internal/cache"
	"harborcms/internal/config"
	"harborcms/internal/database"
	"harborcms/internal/handlers"
	"harborcms/internal/middleware"
	"harborcms/internal/router"
	"harborcms/internal/session"
	"harborcms/internal/store"
)

func main() {
	// Structured logger for the whole process.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the initial admin account (no-op if users exist).
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	sessionStore := session.NewStore(valkeyClient)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	boardStore := store.NewBoardStore(db)
	menuStore := store.NewMenuStore(db)
	contentStore := store.NewContentStore(db)
	postStore := store.NewPostStore(db)
	settingStore := store.NewSiteSettingStore(db)

	// Default boards are seeded exactly once, here at startup; read paths
	// never write.
	if err := boardStore.EnsureDefaults(); err != nil {
		slog.Error("failed to seed default boards", "error", err)
		os.Exit(1)
	}

	resolver := acl.NewResolver(menuStore, categoryStore)

	// The edge gate fetches the ACL snapshot over HTTP from this same
	// server and caches it briefly.
	gate := middleware.NewGate(middleware.GateConfig{
		ACLURL: cfg.ACLBaseURL + "/api/acl",
		TTL:    cfg.ACLCacheTTL,
	})

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(categoryStore, boardStore, menuStore, settingStore)
	authHandlers := handlers.NewAuth(sessionStore, userStore, "harborcms")
	publicHandlers := handlers.NewPublic(menuStore, categoryStore, boardStore, contentStore, postStore, settingStore, resolver)
	aclHandlers := handlers.NewACL(resolver)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, gate, adminHandlers, authHandlers, publicHandlers, aclHandlers)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
