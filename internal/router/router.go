package router

import (
	"github.com/gin-gonic/gin"

	"judgebrief/internal/handler"
	"judgebrief/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	analysisH *handler.AnalysisHandler,
	searchH *handler.SearchHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	analyses := v1.Group("/analyses")
	analyses.POST("", analysisH.Analyze)
	analyses.POST("/upload", analysisH.Upload)
	analyses.GET("", analysisH.List)
	analyses.GET("/export.csv", analysisH.ExportCSV)
	analyses.GET("/export.xlsx", analysisH.ExportXLSX)
	analyses.GET("/:id", analysisH.GetByID)
	analyses.GET("/:id/brief", analysisH.Brief)
	analyses.GET("/:id/search", analysisH.Search)
	analyses.DELETE("/:id", analysisH.Delete)

	v1.POST("/search", searchH.Search)

	return r
}
