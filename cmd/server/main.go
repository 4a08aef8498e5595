package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/purinx/my-blog/pkg/blog/api"
	"github.com/purinx/my-blog/pkg/blog/config"
)

type envConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// Temporary fallback for local testing.
	APIKey string `env:"API_KEY" env-default:"temp-api-key"`

	DatabaseType string `env:"DATABASE_TYPE" env-default:"memory"`
	DatabaseURL  string `env:"DATABASE_URL"`

	StorageBackend string `env:"STORAGE_BACKEND" env-default:"memory"`
	FSBaseDir      string `env:"FS_BASE_DIR"`

	S3Region                 string `env:"S3_REGION"`
	S3Bucket                 string `env:"S3_BUCKET"`
	S3AccessKeyID            string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey        string `env:"S3_SECRET_ACCESS_KEY"`
	S3Endpoint               string `env:"S3_ENDPOINT"`
	S3UsePathStyle           bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	S3CreateBucketIfNotExist bool   `env:"S3_CREATE_BUCKET_IF_NOT_EXIST" env-default:"false"`
}

func main() {
	var env envConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	serverConfig := config.ServerConfig{
		Port:           env.Port,
		Environment:    env.Environment,
		APIKey:         env.APIKey,
		DatabaseType:   env.DatabaseType,
		DatabaseURL:    env.DatabaseURL,
		StorageBackend: env.StorageBackend,
		FSBaseDir:      env.FSBaseDir,
		S3: config.S3Config{
			Region:                 env.S3Region,
			Bucket:                 env.S3Bucket,
			AccessKeyID:            env.S3AccessKeyID,
			SecretAccessKey:        env.S3SecretAccessKey,
			Endpoint:               env.S3Endpoint,
			UsePathStyle:           env.S3UsePathStyle,
			CreateBucketIfNotExist: env.S3CreateBucketIfNotExist,
		},
	}

	if err := serverConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	svc, err := serverConfig.BuildService(context.Background())
	if err != nil {
		log.Fatalf("Failed to build service: %v", err)
	}

	handler := api.NewPostHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Mount("/posts", handler.PublicRoutes())
	r.Route("/api", func(r chi.Router) {
		r.Use(api.RequireAPIKey(serverConfig.APIKey))
		r.Mount("/posts", handler.AdminRoutes())
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: r,
	}

	go func() {
		log.Printf("Blog server starting on port %s (env: %s)", serverConfig.Port, serverConfig.Environment)
		log.Printf("Metadata store: %s, blob store: %s", serverConfig.DatabaseType, serverConfig.StorageBackend)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
