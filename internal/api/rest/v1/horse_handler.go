package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"

	"github.com/gin-gonic/gin"
)

// HorseHandler defines the interface for handling horse-related operations
type HorseHandler interface {
	List(ctx *gin.Context)
	Create(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	UpdateByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// horseHandler struct holds the horse and report services
type horseHandler struct {
	horseService  horses.HorseService
	reportService rides.ReportService
}

// NewHorseHandler creates a new HorseHandler
func NewHorseHandler(horseService horses.HorseService, reportService rides.ReportService) HorseHandler {
	return &horseHandler{
		horseService:  horseService,
		reportService: reportService,
	}
}

// List fetches all horses with their ride counts
func (handler *horseHandler) List(ctx *gin.Context) {
	summaries, err := handler.horseService.List(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, newErrorResponse(fmt.Sprintf("list query failed: %v", err.Error())))
		return
	}

	listResponse := make([]HorseResponse, 0, len(summaries))
	for _, summary := range summaries {
		response := newHorseResponse(summary.Horse)
		rideCount := summary.RideCount
		response.RideCount = &rideCount
		listResponse = append(listResponse, response)
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// Create registers a new horse
func (handler *horseHandler) Create(ctx *gin.Context) {
	var request HorseCreateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, newErrorResponse("invalid request body"))
		return
	}

	horse, err := handler.horseService.Create(ctx, request.Name, request.Notes)
	if err != nil {
		if errors.Is(err, horses.ErrHorseExists) {
			ctx.JSON(http.StatusConflict, newErrorResponse(fmt.Sprintf("horse named %q already exists", request.Name)))
			return
		}
		ctx.JSON(http.StatusBadRequest, newErrorResponse(fmt.Sprintf("error creating horse: %v", err.Error())))
		return
	}

	ctx.JSON(http.StatusCreated, newHorseResponse(horse))
}

// GetByID fetches a horse with its full statistics report
func (handler *horseHandler) GetByID(ctx *gin.Context) {
	horseID := ctx.Param("id")

	horse, err := handler.horseService.GetByID(ctx, horseID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, newErrorResponse(fmt.Sprintf("horse with id %s not found", horseID)))
		return
	}

	report, err := handler.reportService.HorseReport(ctx, horseID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, newErrorResponse(fmt.Sprintf("could not build report of horse %s: %v", horseID, err.Error())))
		return
	}

	response := HorseDetailResponse{
		Horse: newHorseResponse(horse),
		Stats: HorseStatsResponse{
			Rides:       report.Stats.Rides,
			Km:          report.Stats.Km,
			AvgKmh:      report.Stats.AvgKmh,
			MaxSpeedKmh: report.Stats.MaxSpeedKmh,
		},
		Monthly:     newPeriodRowResponses(report.Summary.Monthly),
		Weekly:      newPeriodRowResponses(report.Summary.Weekly),
		Yearly:      newPeriodRowResponses(report.Summary.Yearly),
		TopLongest:  newRideResponses(report.TopLongest),
		TopFastest:  newRideResponses(report.TopFastest),
		TopClimbing: newRideResponses(report.TopClimbing),
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateByID replaces the mutable fields of a horse
func (handler *horseHandler) UpdateByID(ctx *gin.Context) {
	horseID := ctx.Param("id")

	var request HorseUpdateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, newErrorResponse("invalid request body"))
		return
	}

	horse, err := handler.horseService.UpdateByID(ctx, horseID, horses.HorseUpdate{
		Name:          request.Name,
		Notes:         request.Notes,
		WalkTrotKmh:   request.WalkTrotKmh,
		TrotCanterKmh: request.TrotCanterKmh,
	})
	if err != nil {
		if errors.Is(err, horses.ErrHorseNotFound) {
			ctx.JSON(http.StatusNotFound, newErrorResponse(fmt.Sprintf("horse with id %s not found", horseID)))
			return
		}
		ctx.JSON(http.StatusBadRequest, newErrorResponse(fmt.Sprintf("error updating horse: %v", err.Error())))
		return
	}

	ctx.JSON(http.StatusOK, newHorseResponse(horse))
}

// DeleteByID deletes a horse by ID, keeping its rides
func (handler *horseHandler) DeleteByID(ctx *gin.Context) {
	horseID := ctx.Param("id")

	if err := handler.horseService.DeleteByID(ctx, horseID); err != nil {
		ctx.JSON(http.StatusNotFound, newErrorResponse(fmt.Sprintf("horse with id %s not found", horseID)))
		return
	}

	ctx.Status(http.StatusNoContent)
}
