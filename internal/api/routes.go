package api

import (
	"net/http"
	"time"

	"github.com/akeath18/HPE-assets/internal/config"
	"github.com/akeath18/HPE-assets/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	cfg config.Config,
	submissionService service.SubmissionService,
	reviewService service.ReviewService,
) {
	router.Use(corsMiddleware(cfg.CORS))

	submissionHandler := NewSubmissionHandler(submissionService, reviewService)
	coachKeyMiddleware := CoachKeyMiddleware(cfg.Review.CoachKey)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":                 true,
			"now":                time.Now().UTC().Format(time.RFC3339),
			"githubConfigured":   cfg.GitHub.Token != "",
			"coachKeyConfigured": cfg.Review.CoachKey != "",
		})
	})

	submissions := router.Group("/api/submissions")
	{
		// Submitting a change needs no key; everything that reads the queue
		// or transitions a submission is coach-gated.
		submissions.POST("", submissionHandler.Create)

		submissions.GET("/pending", coachKeyMiddleware, submissionHandler.ListPending)
		submissions.GET("/history", coachKeyMiddleware, submissionHandler.ListHistory)
		submissions.POST("/:id/approve", coachKeyMiddleware, submissionHandler.Approve)
		submissions.POST("/:id/reject", coachKeyMiddleware, submissionHandler.Reject)
	}
}

// corsMiddleware builds the CORS policy from the configured allow-list.
// An empty list allows any origin.
func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", coachKeyHeader)

	origins := cfg.Origins()
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}

	return cors.New(corsConfig)
}
