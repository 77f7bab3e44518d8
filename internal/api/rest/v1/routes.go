package v1

import (
	"net/http"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/persistence"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/telemetry"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	rideUploadService rides.RideUploadService,
	rideMetadataService rides.RideMetadataService,
	rideAnalysisService rides.RideAnalysisService,
	rideDownloadService rides.RideDownloadService,
	horseService horses.HorseService,
	reportService rides.ReportService,
	backupService rides.BackupService,
	metrics *telemetry.Telemetry,
	db *gorm.DB) {

	v1 := r.Group(BasePath) // lookup in version file

	// Rides Routes
	rideHandler := NewRideHandler(rideUploadService, rideMetadataService, rideAnalysisService, rideDownloadService)
	v1.POST("/rides", rideHandler.Upload)
	v1.GET("/rides", rideHandler.List)
	v1.GET("/rides/:id", rideHandler.GetByID)
	v1.GET("/rides/:id/analysis", rideHandler.AnalyzeByID)
	v1.GET("/rides/:id/file", rideHandler.DownloadByID)
	v1.DELETE("/rides/:id", rideHandler.DeleteByID)

	// Horses Routes
	horseHandler := NewHorseHandler(horseService, reportService)
	v1.GET("/horses", horseHandler.List)
	v1.POST("/horses", horseHandler.Create)
	v1.GET("/horses/:id", horseHandler.GetByID)
	v1.PUT("/horses/:id", horseHandler.UpdateByID)
	v1.DELETE("/horses/:id", horseHandler.DeleteByID)

	// Reports Routes
	reportHandler := NewReportHandler(reportService, backupService)
	v1.GET("/reports/summary", reportHandler.Summary)
	v1.GET("/backup.zip", reportHandler.Backup)

	v1.GET("/health", func(ctx *gin.Context) {
		if err := persistence.PingDB(db); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, newErrorResponse("database unreachable"))
			return
		}
		ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	})

	if metrics != nil {
		v1.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}
