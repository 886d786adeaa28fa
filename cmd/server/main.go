package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akeath18/HPE-assets/internal/api"
	"github.com/akeath18/HPE-assets/internal/config"
	"github.com/akeath18/HPE-assets/internal/repository"
	"github.com/akeath18/HPE-assets/internal/repository/file"
	mongorepo "github.com/akeath18/HPE-assets/internal/repository/mongo"
	"github.com/akeath18/HPE-assets/internal/service"
	"github.com/akeath18/HPE-assets/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting training plan review server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	if cfg.Review.CoachKey == "" {
		log.Println("WARN: review.coach_key is not set; review endpoints will refuse every request.")
	}

	// --- Submission Queue Store ---
	submissionRepo, cleanup, err := buildSubmissionRepository(cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize submission store: %v", err)
	}
	defer cleanup()
	log.Printf("Submission store ready (driver: %s).", cfg.Store.Driver)

	// --- Remote Plan Store ---
	planStore, err := buildPlanStore(cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize plan store: %v", err)
	}
	log.Printf("Plan store ready (driver: %s).", cfg.Plans.Driver)

	// --- Services ---
	submissionService := service.NewSubmissionService(submissionRepo)
	reviewService := service.NewReviewService(submissionRepo, planStore)

	// --- Gin Engine & Routes ---
	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, cfg, submissionService, reviewService)

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// buildSubmissionRepository selects the queue backend from config. The
// returned cleanup disconnects MongoDB when that driver is active and is a
// no-op otherwise.
func buildSubmissionRepository(cfg config.Config) (repository.SubmissionRepository, func(), error) {
	switch cfg.Store.Driver {
	case "mongo":
		client, err := mongorepo.ConnectDB(cfg.Store.URI)
		if err != nil {
			return nil, nil, err
		}

		db := client.Database(cfg.Store.Database)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			mongorepo.EnsureSubmissionIndexes(ctx, db.Collection("submissions"))
		}()

		cleanup := func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongorepo.DisconnectDB(client); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}
		return mongorepo.NewMongoSubmissionRepository(db), cleanup, nil

	case "file", "":
		repo, err := file.NewSubmissionStore(cfg.Store.File)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil

	default:
		return nil, nil, errors.New("unknown store driver: " + cfg.Store.Driver)
	}
}

// buildPlanStore selects the remote plan document backend from config.
func buildPlanStore(cfg config.Config) (storage.PlanStore, error) {
	switch cfg.Plans.Driver {
	case "github", "":
		return storage.NewGitHubStore(cfg.GitHub)
	case "s3":
		return storage.NewS3Store(cfg.S3)
	case "memory":
		// Local development only; starts from an empty document.
		return storage.NewMemoryStore([]byte("{\"clients\": []}\n")), nil
	default:
		return nil, errors.New("unknown plans driver: " + cfg.Plans.Driver)
	}
}
