package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	lookupcache "fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/catalog"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	port := config.Get("PORT", "8080")

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := repositories.InitSchema(pool); err != nil {
		log.Fatal(err)
	}

	// The lookup cache shields the geocoding/routing providers and carries
	// the raw station records between catalog rebuilds. The service runs
	// without it, just slower and chattier toward ORS.
	var cache ports.LookupCache
	redisAddr := config.Get("REDIS_ADDR", "localhost:6379")
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       config.GetInt("REDIS_DB", 0),
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis unavailable at %s, running without lookup cache: %v", redisAddr, err)
	} else {
		cache = lookupcache.NewRedisLookupCache(client)
	}
	cancel()

	provider, err := routing.NewORSProvider(orsKey, cache)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewPostgresStationRepository(pool)
	loader := catalog.NewLoader(repo, cache, lookupcache.CatalogTTL)

	// Build the first catalog snapshot before accepting traffic.
	cat, err := loader.Refresh(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("catalog loaded stations=%d version=%d", cat.Len(), cat.Version())

	defaultProfile := domain.VehicleProfile{
		RangeMiles:     config.GetFloat("VEHICLE_RANGE_MILES", 500),
		MilesPerGallon: config.GetFloat("VEHICLE_MPG", 10),
		BufferMiles:    config.GetFloat("VEHICLE_BUFFER_MILES", 50),
	}
	if err := defaultProfile.Validate(); err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(provider, provider, loader, defaultProfile)

	// Timeouts are tuned for cold-cache trip planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
