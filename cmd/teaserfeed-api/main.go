package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// FeedServer exposes the generated feed file and the last run report over
// HTTP.
type FeedServer struct {
	feedPath   string
	reportPath string
}

// NewFeedServer creates a feed server for the given artifact paths.
func NewFeedServer(feedPath, reportPath string) *FeedServer {
	return &FeedServer{feedPath: feedPath, reportPath: reportPath}
}

// SetupRouter configures the Gin router with the feed API routes.
func (s *FeedServer) SetupRouter() *gin.Engine {
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type")

		if ctx.Request.Method == "OPTIONS" {
			ctx.AbortWithStatus(http.StatusOK)
			return
		}

		ctx.Next()
	})

	api := router.Group("/api/v1")
	api.GET("/feed", s.HandleGetFeed)
	api.GET("/status", s.HandleGetStatus)

	return router
}

// errorResponse creates a standardized error response.
func errorResponse(code, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// HandleGetFeed handles GET /api/v1/feed.
func (s *FeedServer) HandleGetFeed(ctx *gin.Context) {
	data, err := os.ReadFile(s.feedPath)
	if err != nil {
		if os.IsNotExist(err) {
			ctx.JSON(http.StatusNotFound, errorResponse("not_found", "Feed has not been generated yet"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to read feed"))
		return
	}

	ctx.Data(http.StatusOK, "application/rss+xml; charset=utf-8", data)
}

// HandleGetStatus handles GET /api/v1/status.
func (s *FeedServer) HandleGetStatus(ctx *gin.Context) {
	data, err := os.ReadFile(s.reportPath)
	if err != nil {
		if os.IsNotExist(err) {
			ctx.JSON(http.StatusNotFound, errorResponse("not_found", "No run has completed yet"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to read run report"))
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	feedPath := getEnv("TEASERFEED_FEED_PATH", "feed.xml")
	reportPath := getEnv("TEASERFEED_REPORT_PATH", "lastrun.json")
	port := getEnv("TEASERFEED_API_PORT", "8080")

	server := NewFeedServer(feedPath, reportPath)
	router := server.SetupRouter()

	log.Printf("Serving feed API on port %s (feed: %s)", port, feedPath)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
