package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	Event "vidhive/Events"
	UserEvents "vidhive/Events/Users"
	VideoEvents "vidhive/Events/Videos"
	Auth "vidhive/Services/Auth"
	Mdb "vidhive/Services/Mdb"
	Storage "vidhive/Services/Storage"
	Tasks "vidhive/Services/Tasks"
	Utils "vidhive/Utils"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timestamp := time.Now().Format("2006-01-02 15:04:05")
		fmt.Printf("[%s] %s %s\n", timestamp, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	cfg, err := Utils.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	var store Mdb.Store
	if cfg.MongoURI != "" {
		client, err := Mdb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer client.Disconnect(ctx)

		store, err = Mdb.NewMongoStore(ctx, client, cfg.MongoDB)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		log.Println("MongoDB connected")
	} else {
		log.Println("Warning: MONGO_URI not set, using in-memory store (data is not persisted)")
		store = Mdb.NewMemoryStore()
	}

	gateway, err := Storage.NewS3Gateway(ctx, Storage.Config{
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		Region:    cfg.StorageRegion,
		Endpoint:  cfg.StorageEndpoint,
		BaseURL:   cfg.StorageBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	authService := Auth.NewService(cfg.JWTSecret, cfg.TokenTTL)

	// Optional asynq worker for retrying failed asset destroys. Without
	// Redis the handlers fall back to logging.
	var enqueuer Tasks.Enqueuer
	if cfg.RedisAddr != "" {
		client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer client.Close()
		enqueuer = client

		srv := asynq.NewServer(
			asynq.RedisClientOpt{Addr: cfg.RedisAddr},
			asynq.Config{Concurrency: 2},
		)
		mux := asynq.NewServeMux()
		mux.HandleFunc(Tasks.TypeDestroyAsset, Tasks.NewHandler(gateway).HandleDestroyAssetTask)
		if err := srv.Start(mux); err != nil {
			log.Fatalf("Failed to start cleanup worker: %v", err)
		}
		defer srv.Shutdown()
		log.Println("Cleanup worker started")
	}

	registry := &Event.Registry{
		Users:  UserEvents.NewHandler(authService, store, gateway, enqueuer),
		Videos: VideoEvents.NewHandler(authService, store, gateway, enqueuer),
	}

	r := chi.NewRouter()
	r.Use(corsMiddleware, loggingMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(httprate.LimitByIP(100, time.Minute))
	registry.Handler(r)

	addr := ":" + cfg.Port
	fmt.Println("Server started at " + addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		fmt.Println("Server error:", err)
	}
}
