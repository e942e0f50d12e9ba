package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mhartig/microshop/internal/api/handlers"
	"github.com/mhartig/microshop/internal/api/middleware"
	"github.com/mhartig/microshop/internal/config"
	"github.com/mhartig/microshop/internal/health"
	"github.com/mhartig/microshop/internal/metrics"
	repository "github.com/mhartig/microshop/internal/repositories"
	service "github.com/mhartig/microshop/internal/services"
	"github.com/redis/go-redis/v9"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad(":8081")

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	if err := repos.EnsureCartSchema(context.Background()); err != nil {
		slog.Error("Error preparing the database schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cartRepo := repository.NewCartRepo(repos.DB)
	cartService := service.NewCartService(cartRepo)
	cartHandler := handlers.NewCartHandler(cartService)

	healthHandler, err := health.NewHealthHandler(cfg, "cart-service")
	if err != nil {
		slog.Error("Error creating the health endpoint", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /{$}", handlers.Root("cart-service"))
	routerMux.HandleFunc("POST /cart/{$}", cartHandler.CreateCart())
	routerMux.HandleFunc("GET /cart/{user_id}", cartHandler.GetCart())
	routerMux.HandleFunc("POST /cart/{user_id}/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /cart/{user_id}/items/{product_id}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /cart/{user_id}/items/{product_id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /cart/{user_id}/clear", cartHandler.ClearCart())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining. Metrics must wrap the mux directly: the logging
	// middleware hands a shallow request copy down the chain, so the route
	// pattern the mux fills in is only visible inside it.
	var handler http.Handler = metrics.Middleware(routerMux)
	handler = middleware.Logging(handler)

	// Rate limiting only when a redis instance is configured
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
			cancel()
			os.Exit(1)
		}
		cancel()

		rateLimiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSize)
		handler = rateLimiter.Limit(handler)
	}

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

}
