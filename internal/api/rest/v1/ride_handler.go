package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// RideHandler defines the interface for handling ride-related operations
type RideHandler interface {
	Upload(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	AnalyzeByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// rideHandler struct holds the ride services
type rideHandler struct {
	rideUploadService   rides.RideUploadService
	rideMetadataService rides.RideMetadataService
	rideAnalysisService rides.RideAnalysisService
	rideDownloadService rides.RideDownloadService
}

// NewRideHandler creates a new RideHandler
func NewRideHandler(
	rideUploadService rides.RideUploadService,
	rideMetadataService rides.RideMetadataService,
	rideAnalysisService rides.RideAnalysisService,
	rideDownloadService rides.RideDownloadService,
) RideHandler {
	return &rideHandler{
		rideUploadService:   rideUploadService,
		rideMetadataService: rideMetadataService,
		rideAnalysisService: rideAnalysisService,
		rideDownloadService: rideDownloadService,
	}
}

// Upload ingests a GPX file from a multipart form and creates a ride
func (handler *rideHandler) Upload(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, newErrorResponse("invalid form data"))
		return
	}

	var opts rides.UploadOptions
	if values := form.Value["horse_name"]; len(values) > 0 {
		opts.HorseName = values[0]
	}
	if values := form.Value["ride_title"]; len(values) > 0 {
		opts.Title = values[0]
	}
	if values := form.Value["ride_date"]; len(values) > 0 {
		opts.RideDate = values[0]
	}

	ride, err := handler.rideUploadService.Upload(ctx, form, opts)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, newErrorResponse(fmt.Sprintf("error uploading ride: %v", err.Error())))
		return
	}

	ctx.JSON(http.StatusCreated, newRideResponse(ride))
}

// List fetches rides optionally narrowed by query parameters
func (handler *rideHandler) List(ctx *gin.Context) {
	query := rides.NewRideQuery()

	if horseID := ctx.Query("horseId"); len(horseID) > 0 {
		query.HorseID = horseID
	}

	if from := ctx.Query("from"); len(from) > 0 {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, newErrorResponse(fmt.Sprintf("invalid from date %q", from)))
			return
		}
		query.From = parsed
	}

	if to := ctx.Query("to"); len(to) > 0 {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, newErrorResponse(fmt.Sprintf("invalid to date %q", to)))
			return
		}
		query.To = parsed
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, newErrorResponse(fmt.Sprintf("validation failed: %v", err.Error())))
		return
	}

	rideList, err := handler.rideMetadataService.List(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, newErrorResponse(fmt.Sprintf("list query failed: %v", err.Error())))
		return
	}

	ctx.JSON(http.StatusOK, newRideResponses(rideList))
}

// GetByID fetches ride metadata by ID
func (handler *rideHandler) GetByID(ctx *gin.Context) {
	rideID := ctx.Param("id")

	ride, err := handler.rideMetadataService.GetByID(ctx, rideID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, newErrorResponse(fmt.Sprintf("ride with id %s not found", rideID)))
		return
	}

	ctx.JSON(http.StatusOK, newRideResponse(ride))
}

// AnalyzeByID recomputes the detailed analysis of a ride
func (handler *rideHandler) AnalyzeByID(ctx *gin.Context) {
	rideID := ctx.Param("id")

	analysis, err := handler.rideAnalysisService.AnalyzeByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, rides.ErrRideNotFound) {
			ctx.JSON(http.StatusNotFound, newErrorResponse(fmt.Sprintf("ride with id %s not found", rideID)))
			return
		}
		ctx.JSON(http.StatusInternalServerError, newErrorResponse(fmt.Sprintf("could not analyze ride with id %s: %v", rideID, err.Error())))
		return
	}

	response := AnalysisResponse{
		SpeedSeries:      analysis.SpeedSeries,
		ElevationProfile: analysis.ElevationProfile,
		Coordinates:      analysis.Coordinates,
		TrackMissing:     analysis.TrackMissing,
	}
	if response.SpeedSeries == nil {
		response.SpeedSeries = []rides.SpeedPoint{}
	}
	if response.ElevationProfile == nil {
		response.ElevationProfile = []rides.ProfilePoint{}
	}
	if response.Coordinates == nil {
		response.Coordinates = []rides.Coordinate{}
	}

	ctx.JSON(http.StatusOK, response)
}

// DownloadByID serves the raw GPX of a ride, redirecting for remote tracks
func (handler *rideHandler) DownloadByID(ctx *gin.Context) {
	rideID := ctx.Param("id")

	download, err := handler.rideDownloadService.DownloadByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, rides.ErrRideNotFound) || errors.Is(err, rides.ErrTrackMissing) {
			ctx.JSON(http.StatusNotFound, newErrorResponse(fmt.Sprintf("track of ride %s not found", rideID)))
			return
		}
		ctx.JSON(http.StatusInternalServerError, newErrorResponse(fmt.Sprintf("could not download track of ride %s: %v", rideID, err.Error())))
		return
	}

	if download.RedirectURL != "" {
		ctx.Redirect(http.StatusTemporaryRedirect, download.RedirectURL)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", download.FileName))
	ctx.Data(http.StatusOK, download.ContentType, download.Data)
}

// DeleteByID deletes a ride by ID
func (handler *rideHandler) DeleteByID(ctx *gin.Context) {
	rideID := ctx.Param("id")

	if err := handler.rideMetadataService.DeleteByID(ctx, rideID); err != nil {
		ctx.JSON(http.StatusNotFound, newErrorResponse(fmt.Sprintf("ride with id %s not found", rideID)))
		return
	}

	ctx.Status(http.StatusNoContent)
}
