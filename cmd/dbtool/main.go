package main

import (
	"context"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	lookupcache "fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
)

// dbtool performs the one-time bulk import: it initializes the schema,
// then reads the OPIS fuel price CSV, geocodes each station, and upserts
// the records. Geocoding goes through the lookup cache when Redis is
// available, so re-runs only pay for new city/state pairs.
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

	csvPath := config.Get("FUEL_CSV_PATH", "data/fuel-prices.csv")
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(pool); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	var cache ports.LookupCache
	client := redis.NewClient(&redis.Options{
		Addr:     config.Get("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       config.GetInt("REDIS_DB", 0),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, geocoding without cache: %v", err)
	} else {
		cache = lookupcache.NewRedisLookupCache(client)
	}

	geocoder, err := routing.NewORSProvider(orsKey, cache)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Importing stations from %s ...", csvPath)
	stats, err := repositories.ImportCSV(context.Background(), pool, csvPath, geocoder)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Printf("Import complete: rows=%d imported=%d skipped=%d",
		stats.TotalRows, stats.Imported, stats.Skipped)
}
