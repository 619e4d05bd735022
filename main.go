package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"

	"raksetu/auth"
	"raksetu/cache"
	"raksetu/coordinator"
	"raksetu/cronjobs"
	"raksetu/db"
	"raksetu/handlers"
	"raksetu/notify"
	"raksetu/routes"
	"raksetu/types"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Init firestore
	firestoreClient, err := db.InitFirestore()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	// Init Firebase Auth for token verification on write routes
	authClient, err := auth.InitAuth()
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	// Pick the cache tier: Redis when configured, in-memory otherwise
	var listingCache cache.Cache = cache.NewMemoryCache()
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		fmt.Println("Using Redis cache at", redisAddr)
		listingCache = cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: redisAddr}))
	}

	// Notification sink + response coordinator
	sink := notify.NewSMSGateway()
	coord := coordinator.New(db.NewEmergencyStore(firestoreClient), sink)

	// OpenAI client for the shortage digest (optional)
	var openaiClient *openai.Client
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		fmt.Println("OPENAI_API_KEY loaded")
		openaiClient = openai.NewClient(apiKey)
	}

	// Initialize cron jobs
	cronjobs.InitCronJobs(firestoreClient, sink)

	// Keep the listing cache warm from the store's live subscription
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go func() {
		err := db.WatchActiveEmergencies(watchCtx, firestoreClient, func(list []types.EmergencyRequest) {
			raw, err := json.Marshal(list)
			if err != nil {
				log.Printf("Warning: failed to marshal emergency snapshot: %v", err)
				return
			}
			if err := listingCache.Set(context.Background(), handlers.ActiveEmergenciesKey, raw); err != nil {
				log.Printf("Warning: failed to refresh emergency cache: %v", err)
			}
		})
		if err != nil {
			log.Printf("Emergency watch stopped: %v", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(firestoreClient, authClient, coord, listingCache, sink, openaiClient)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
