package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"

	"github.com/gin-gonic/gin"
)

// ReportHandler defines the interface for handling report and backup operations
type ReportHandler interface {
	Summary(ctx *gin.Context)
	Backup(ctx *gin.Context)
}

// reportHandler struct holds the report and backup services
type reportHandler struct {
	reportService rides.ReportService
	backupService rides.BackupService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService rides.ReportService, backupService rides.BackupService) ReportHandler {
	return &reportHandler{
		reportService: reportService,
		backupService: backupService,
	}
}

// Summary aggregates all rides into monthly, weekly and yearly rows
func (handler *reportHandler) Summary(ctx *gin.Context) {
	summary, err := handler.reportService.Summary(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, newErrorResponse(fmt.Sprintf("could not build summary: %v", err.Error())))
		return
	}

	ctx.JSON(http.StatusOK, newSummaryResponse(summary))
}

// Backup serves a zip archive of all horses and rides as CSV
func (handler *reportHandler) Backup(ctx *gin.Context) {
	archive, err := handler.backupService.Archive(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, newErrorResponse(fmt.Sprintf("could not build backup: %v", err.Error())))
		return
	}

	fileName := fmt.Sprintf("gpx-analyzer-backup-%s.zip", time.Now().UTC().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	ctx.Data(http.StatusOK, "application/zip", archive)
}
