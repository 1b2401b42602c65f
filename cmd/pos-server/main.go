package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/checkout"
	h "github.com/YuktaSaindane/bakery-pos-fullstack/internal/http"
	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/reporting"
	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/repository"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	SeedProducts    bool

	DB repository.Config
}

func loadConfig() *Config {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		SeedProducts:    getEnv("SEED_PRODUCTS", "false") == "true",
		DB: repository.Config{
			Driver:        getEnv("DB_DRIVER", repository.DriverSQLite),
			Path:          getEnv("DB_PATH", "./bakery-pos.db"),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          dbPort,
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", "postgres"),
			DBName:        getEnv("DB_NAME", "bakery_pos"),
			MigrationsDir: getEnv("MIGRATIONS_PATH", "./internal/repository/migrations"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("pos-server starting...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	cfg := loadConfig()

	repo, err := repository.NewRepository(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	if cfg.SeedProducts {
		n, err := repo.SeedProducts(context.Background())
		if err != nil {
			log.Fatalf("Failed to seed products: %v", err)
		}
		if n > 0 {
			log.Printf("Seeded %d products", n)
		}
	}

	engine := checkout.NewEngine(repo)
	facade := reporting.NewFacade(repo)

	productHandler := h.NewProductHandler(repo, cfg.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(engine, repo, cfg.RequestTimeout)
	dashboardHandler := h.NewDashboardHandler(facade, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Post("/", productHandler.Create)
			r.Get("/{product_id}", productHandler.Get)
			r.Put("/{product_id}", productHandler.Update)
			r.Delete("/{product_id}", productHandler.Delete)
			r.Patch("/{product_id}/stock", productHandler.UpdateStock)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", ordersHandler.Create)
			r.Get("/", ordersHandler.List)
			r.Get("/{order_id}", ordersHandler.Get)
			r.Patch("/{order_id}/status", ordersHandler.UpdateStatus)
		})
		r.Get("/dashboard", dashboardHandler.Get)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "bakery-pos"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("POS server starting on :%s (db driver: %s)", cfg.HTTPPort, cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
