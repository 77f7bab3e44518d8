//go:build unit
// +build unit

package v1

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRideHandlerWithMocks() (RideHandler, *MockRideUploadService, *MockRideMetadataService, *MockRideAnalysisService, *MockRideDownloadService) {
	mockUploadService := new(MockRideUploadService)
	mockMetadataService := new(MockRideMetadataService)
	mockAnalysisService := new(MockRideAnalysisService)
	mockDownloadService := new(MockRideDownloadService)
	handler := NewRideHandler(mockUploadService, mockMetadataService, mockAnalysisService, mockDownloadService)
	return handler, mockUploadService, mockMetadataService, mockAnalysisService, mockDownloadService
}

func sampleRide() *rides.Ride {
	return &rides.Ride{
		ID:              "123",
		DateTimeCreated: time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC),
		Title:           "morning ride",
		RideDate:        time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
		DistanceKm:      12.345,
		TotalTimeS:      3600,
		MovingTimeS:     3200,
		TrackRef:        "/data/gpx/track.gpx",
	}
}

func TestRideHandler_Upload_Success(t *testing.T) {
	handler, mockUploadService, _, _, _ := newRideHandlerWithMocks()

	mockUploadService.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return(sampleRide(), nil)

	var b bytes.Buffer
	writer := multipart.NewWriter(&b)
	fileWriter, err := writer.CreateFormFile("file", "ride.gpx")
	require.NoError(t, err)
	_, err = fileWriter.Write(testutil.SampleGpxDocument(time.Now().UTC()))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("horse_name", "Luna"))
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/rides", &b)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "123")
	assert.Contains(t, w.Body.String(), "2024-05-12")
	mockUploadService.AssertExpectations(t)
}

func TestRideHandler_Upload_InvalidForm_Error(t *testing.T) {
	handler, _, _, _, _ := newRideHandlerWithMocks()

	req, _ := http.NewRequest("POST", "/rides", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid form data")
}

func TestRideHandler_List_Success(t *testing.T) {
	handler, _, mockMetadataService, _, _ := newRideHandlerWithMocks()

	mockMetadataService.On("List", mock.Anything, mock.Anything).
		Return([]*rides.Ride{sampleRide()}, nil)

	req, _ := http.NewRequest("GET", "/rides?limit=10&sortBy=distance_km&sortOrder=asc", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "123")

	query := mockMetadataService.Calls[0].Arguments.Get(1).(*rides.RideQuery)
	assert.Equal(t, 10, query.Limit)
	assert.Equal(t, "distance_km", query.SortBy)
	assert.Equal(t, "asc", query.SortOrder)
	mockMetadataService.AssertExpectations(t)
}

func TestRideHandler_List_InvalidSortBy_Error(t *testing.T) {
	handler, _, _, _, _ := newRideHandlerWithMocks()

	req, _ := http.NewRequest("GET", "/rides?sortBy=title", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
}

func TestRideHandler_List_InvalidFromDate_Error(t *testing.T) {
	handler, _, _, _, _ := newRideHandlerWithMocks()

	req, _ := http.NewRequest("GET", "/rides?from=12.05.2024", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid from date")
}

func TestRideHandler_GetByID_Success(t *testing.T) {
	handler, _, mockMetadataService, _, _ := newRideHandlerWithMocks()

	mockMetadataService.On("GetByID", mock.Anything, "123").Return(sampleRide(), nil)

	req, _ := http.NewRequest("GET", "/rides/123", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "morning ride")
	mockMetadataService.AssertExpectations(t)
}

func TestRideHandler_GetByID_NotFound_Error(t *testing.T) {
	handler, _, mockMetadataService, _, _ := newRideHandlerWithMocks()

	mockMetadataService.On("GetByID", mock.Anything, "missing").
		Return(nil, rides.ErrRideNotFound)

	req, _ := http.NewRequest("GET", "/rides/missing", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestRideHandler_AnalyzeByID_Success(t *testing.T) {
	handler, _, _, mockAnalysisService, _ := newRideHandlerWithMocks()

	now := time.Now().UTC()
	analysis := &rides.RideAnalysis{
		SpeedSeries:      []rides.SpeedPoint{{Time: &now, SpeedKmh: 12.5}},
		ElevationProfile: []rides.ProfilePoint{{DistanceKm: 0.5, ElevationM: 250}},
		Coordinates:      []rides.Coordinate{{Latitude: 48.0, Longitude: 16.0, ElevationM: 250}},
	}
	mockAnalysisService.On("AnalyzeByID", mock.Anything, "123").Return(analysis, nil)

	req, _ := http.NewRequest("GET", "/rides/123/analysis", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	handler.AnalyzeByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "speedSeries")
	assert.Contains(t, w.Body.String(), "12.5")
	mockAnalysisService.AssertExpectations(t)
}

func TestRideHandler_AnalyzeByID_TrackMissing_StillOK(t *testing.T) {
	handler, _, _, mockAnalysisService, _ := newRideHandlerWithMocks()

	mockAnalysisService.On("AnalyzeByID", mock.Anything, "123").
		Return(&rides.RideAnalysis{TrackMissing: true}, nil)

	req, _ := http.NewRequest("GET", "/rides/123/analysis", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	handler.AnalyzeByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"trackMissing":true`)
	// Empty collections serialize as arrays, not null.
	assert.Contains(t, w.Body.String(), `"coordinates":[]`)
}

func TestRideHandler_AnalyzeByID_NotFound_Error(t *testing.T) {
	handler, _, _, mockAnalysisService, _ := newRideHandlerWithMocks()

	mockAnalysisService.On("AnalyzeByID", mock.Anything, "missing").
		Return(nil, rides.ErrRideNotFound)

	req, _ := http.NewRequest("GET", "/rides/missing/analysis", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.AnalyzeByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRideHandler_DownloadByID_LocalFile_Success(t *testing.T) {
	handler, _, _, _, mockDownloadService := newRideHandlerWithMocks()

	mockDownloadService.On("DownloadByID", mock.Anything, "123").
		Return(&rides.TrackDownload{
			FileName:    "track.gpx",
			ContentType: "application/gpx+xml",
			Data:        []byte("<gpx></gpx>"),
		}, nil)

	req, _ := http.NewRequest("GET", "/rides/123/file", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	handler.DownloadByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/gpx+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "track.gpx")
	assert.Equal(t, "<gpx></gpx>", w.Body.String())
}

func TestRideHandler_DownloadByID_RemoteTrack_Redirects(t *testing.T) {
	handler, _, _, _, mockDownloadService := newRideHandlerWithMocks()

	mockDownloadService.On("DownloadByID", mock.Anything, "123").
		Return(&rides.TrackDownload{RedirectURL: "https://tracks.example.com/ride.gpx"}, nil)

	req, _ := http.NewRequest("GET", "/rides/123/file", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	handler.DownloadByID(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://tracks.example.com/ride.gpx", w.Header().Get("Location"))
}

func TestRideHandler_DownloadByID_TrackMissing_Error(t *testing.T) {
	handler, _, _, _, mockDownloadService := newRideHandlerWithMocks()

	mockDownloadService.On("DownloadByID", mock.Anything, "123").
		Return(nil, fmt.Errorf("failed to load track: %w", rides.ErrTrackMissing))

	req, _ := http.NewRequest("GET", "/rides/123/file", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	handler.DownloadByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRideHandler_DeleteByID_Success(t *testing.T) {
	handler, _, mockMetadataService, _, _ := newRideHandlerWithMocks()

	mockMetadataService.On("DeleteByID", mock.Anything, "123").Return(nil)

	req, _ := http.NewRequest("DELETE", "/rides/123", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	handler.DeleteByID(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockMetadataService.AssertExpectations(t)
}

func TestRideHandler_DeleteByID_NotFound_Error(t *testing.T) {
	handler, _, mockMetadataService, _, _ := newRideHandlerWithMocks()

	mockMetadataService.On("DeleteByID", mock.Anything, "missing").
		Return(rides.ErrRideNotFound)

	req, _ := http.NewRequest("DELETE", "/rides/missing", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.DeleteByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
