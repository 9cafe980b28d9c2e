package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ojha-sweta/ShopVault/internal/alert"
	"github.com/ojha-sweta/ShopVault/internal/catalog"
	"github.com/ojha-sweta/ShopVault/internal/clock"
	"github.com/ojha-sweta/ShopVault/internal/events"
	"github.com/ojha-sweta/ShopVault/internal/httpapi"
	"github.com/ojha-sweta/ShopVault/internal/identity"
	"github.com/ojha-sweta/ShopVault/internal/kvstore"
	"github.com/ojha-sweta/ShopVault/internal/order"
	"github.com/ojha-sweta/ShopVault/internal/search"
	"github.com/ojha-sweta/ShopVault/internal/session"
	"github.com/ojha-sweta/ShopVault/internal/wishlist"
)

type Config struct {
	HTTPPort        string
	StoreBackend    string
	SQLitePath      string
	RedisAddr       string
	RedisPassword   string
	PostgresCred    *kvstore.Credentials
	MongoURI        string
	MongoDBName     string
	KafkaBrokers    string
	CatalogSeed     int64
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		StoreBackend:  getEnv("STORE_BACKEND", "memory"),
		SQLitePath:    getEnv("SQLITE_PATH", "shopvault.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		PostgresCred: &kvstore.Credentials{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              getEnvInt("POSTGRES_PORT", 5432),
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "shopvault"),
			MigrationsDirPath: getEnv("POSTGRES_MIGRATIONS_DIR", "internal/kvstore/migrations/postgres"),
		},
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "shopvault"),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		CatalogSeed:     int64(getEnvInt("CATALOG_SEED", 1)),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// openStore picks the persistence backend from config. The returned
// closer is a no-op for backends without a connection to release.
func openStore(ctx context.Context, cfg *Config) (kvstore.Store, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return kvstore.NewMemoryStore(), func() {}, nil

	case "sqlite":
		store, err := kvstore.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		migrationsDir := getEnv("SQLITE_MIGRATIONS_DIR", "internal/kvstore/migrations/sqlite")
		if err := store.RunMigrations(migrationsDir); err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return kvstore.NewRedisStore(client), func() { client.Close() }, nil

	case "postgres":
		store, err := kvstore.NewPostgresStore(cfg.PostgresCred)
		if err != nil {
			return nil, nil, err
		}
		if err := store.RunMigrations(cfg.PostgresCred); err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil

	case "mongo":
		db, err := kvstore.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		client := db.Client()
		return kvstore.NewMongoStore(db), func() { client.Disconnect(context.Background()) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	ctx := context.Background()

	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()
	log.Printf("Using %s store backend", cfg.StoreBackend)

	// Order events are best-effort: without brokers configured the
	// publisher is a no-op.
	var publisher order.Publisher = events.Nop{}
	if cfg.KafkaBrokers != "" {
		kafkaPublisher := events.NewKafka(strings.Split(cfg.KafkaBrokers, ",")...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Printf("Publishing order events to %s", cfg.KafkaBrokers)
	}

	clk := clock.NewSystem()
	notify := alert.Log{}

	cat := catalog.New(kv)
	if err := cat.Load(ctx, cfg.CatalogSeed); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog ready with %d products", len(cat.All()))

	auth := identity.NewAuthService(kv, clk)

	binding, err := session.NewBinding(ctx, auth, kv, cat, notify, clk)
	if err != nil {
		log.Fatalf("Failed to initialize session: %v", err)
	}

	ledger := order.NewLedger(kv)
	checkoutSvc := order.NewCheckoutService(ledger, cat, publisher, clk)
	wishlistSvc := wishlist.NewService(kv, notify)
	history := search.NewHistory(kv, clk)

	productHandler := httpapi.NewProductHandler(cat, history, binding)
	cartHandler := httpapi.NewCartHandler(binding, cat)
	authHandler := httpapi.NewAuthHandler(binding, auth)
	checkoutHandler := httpapi.NewCheckoutHandler(binding, checkoutSvc, ledger)
	wishlistHandler := httpapi.NewWishlistHandler(binding, wishlistSvc, cat)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/featured", productHandler.Featured)
			r.Get("/search", productHandler.Search)
			r.Get("/suggest", productHandler.Suggest)
			r.Get("/{id}", productHandler.Get)
		})

		r.Route("/search-history", func(r chi.Router) {
			r.Get("/", productHandler.SearchHistory)
			r.Delete("/", productHandler.ClearSearchHistory)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.Clear)
			r.Post("/validate", cartHandler.Validate)
			r.Post("/save", cartHandler.SaveForLater)
			r.Post("/restore", cartHandler.LoadSaved)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/reset-password", authHandler.ResetPassword)
			r.Get("/me", authHandler.Me)
			r.Put("/me", authHandler.UpdateProfile)
		})

		r.Post("/checkout", checkoutHandler.Checkout)
		r.Get("/orders", checkoutHandler.Orders)

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.List)
			r.Post("/items/{product_id}", wishlistHandler.Add)
			r.Delete("/items/{product_id}", wishlistHandler.Remove)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("ShopVault starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
