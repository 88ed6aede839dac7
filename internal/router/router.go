package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cadtools/internal/handler"
	"cadtools/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	SheetSizes *handler.SheetSizeHandler
	Documents  *handler.DocumentHandler
	Tables     *handler.TableHandler
	Health     *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, allowedOrigins []string, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks and metrics
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	sizes := v1.Group("/sheet-sizes")
	sizes.GET("", h.SheetSizes.Sizes)
	sizes.POST("/classify", h.SheetSizes.Classify)
	sizes.POST("/count", h.SheetSizes.Count)
	sizes.GET("/reports", h.SheetSizes.ListReports)
	sizes.GET("/reports/:id", h.SheetSizes.GetReport)
	sizes.GET("/reports/:id/export", h.SheetSizes.ExportReport)
	sizes.POST("/reports/:id/publish", h.SheetSizes.PublishReport)

	docs := v1.Group("/documents")
	docs.POST("", h.Documents.Add)
	docs.GET("", h.Documents.List)
	docs.DELETE("", h.Documents.Remove)
	docs.GET("/lookup", h.Documents.Get)
	docs.GET("/find", h.Documents.Find)
	docs.GET("/names", h.Documents.FileNames)
	docs.GET("/at/:index", h.Documents.At)
	docs.DELETE("/at/:index", h.Documents.RemoveAt)
	docs.DELETE("/all", h.Documents.Clear)
	docs.POST("/load", h.Documents.Load)
	docs.POST("/count-sheets", h.Documents.CountSheets)

	tables := v1.Group("/tables")
	tables.GET("", h.Tables.List)
	tables.GET("/:name", h.Tables.Get)
	tables.PUT("/:name", h.Tables.Save)
	tables.DELETE("/:name", h.Tables.Delete)
	tables.POST("/:name/edit", h.Tables.Edit)
	tables.GET("/:name/columns/:column", h.Tables.ColumnValues)
	tables.GET("/:name/export", h.Tables.Export)

	return r
}
