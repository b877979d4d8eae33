package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/lib/pq"

	"github.com/kirbo/go-sensorsim/internal/relay"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func connectRedis() *redis.Client {
	var (
		redisPassword = os.Getenv("REDIS_MASTER_PASSWORD")
		redisHost     = getenv("REDIS_MASTER_HOST", "localhost")
		redisPort     = getenv("REDIS_MASTER_PORT", "6379")
	)

	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password: redisPassword,
		DB:       0,
	})
}

// connectPostgres returns nil when POSTGRES_HOST is unset; readings are then
// relayed without being stored.
func connectPostgres() relay.Store {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		log.Print("POSTGRES_HOST not set, storage disabled")
		return nil
	}

	var (
		port     = getenv("POSTGRES_PORT", "5432")
		user     = os.Getenv("POSTGRES_USERNAME")
		password = os.Getenv("POSTGRES_PASSWORD")
		dbname   = os.Getenv("POSTGRES_DATABASE")
		table    = getenv("POSTGRES_SENSOR_TABLE_METRICS", "sensor_metrics")
	)

	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbname)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("postgres ping: %v", err)
	}

	log.Printf("Connected to postgres at %s:%s", host, port)
	return relay.NewDBStore(db, table)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := connectRedis()
	defer rdb.Close()
	store := connectPostgres()

	server, broadcaster, err := relay.NewSocketServer()
	if err != nil {
		log.Fatalf("socket.io: %v", err)
	}

	r := relay.New(store, broadcaster, log.Default())
	r.Attach(server)

	if err := r.WarmFromRedis(ctx, rdb); err != nil {
		log.Printf("warm cache: %v", err)
	}

	go func() {
		if err := server.Serve(); err != nil {
			log.Fatalf("socket.io serve: %v", err)
		}
	}()
	defer server.Close()

	router := r.NewRouter(server, getenv("RELAY_ALLOW_ORIGIN", "*"))
	go func() {
		if err := router.Run(getenv("RELAY_ADDR", ":8080")); err != nil {
			log.Fatalf("http: %v", err)
		}
	}()

	if err := r.Subscribe(ctx, rdb); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("subscribe: %v", err)
	}

	valid, anomalies := r.Validator().Counts()
	log.Printf("Relay stopped: %d valid readings, %d anomalies", valid, anomalies)
}
