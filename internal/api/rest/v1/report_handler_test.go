//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReportHandler_Summary_Success(t *testing.T) {
	mockReportService := new(MockReportService)
	mockBackupService := new(MockBackupService)
	handler := NewReportHandler(mockReportService, mockBackupService)

	mockReportService.On("Summary", mock.Anything).
		Return(&rides.Summary{
			Monthly: []rides.PeriodRow{{Period: "2024-05", Rides: 2, Km: 30, AvgKmh: 12}},
			Weekly:  []rides.PeriodRow{{Period: "2024-W19", Rides: 2, Km: 30, AvgKmh: 12}},
			Yearly:  []rides.PeriodRow{{Period: "2024", Rides: 2, Km: 30, AvgKmh: 12}},
		}, nil)

	req, _ := http.NewRequest("GET", "/reports/summary", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2024-W19")
	assert.Contains(t, w.Body.String(), `"monthly"`)
	mockReportService.AssertExpectations(t)
}

func TestReportHandler_Summary_Fail(t *testing.T) {
	mockReportService := new(MockReportService)
	mockBackupService := new(MockBackupService)
	handler := NewReportHandler(mockReportService, mockBackupService)

	mockReportService.On("Summary", mock.Anything).
		Return(nil, errors.New("db gone"))

	req, _ := http.NewRequest("GET", "/reports/summary", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Summary(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReportHandler_Backup_Success(t *testing.T) {
	mockReportService := new(MockReportService)
	mockBackupService := new(MockBackupService)
	handler := NewReportHandler(mockReportService, mockBackupService)

	mockBackupService.On("Archive", mock.Anything).Return([]byte("PK archive"), nil)

	req, _ := http.NewRequest("GET", "/backup.zip", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Backup(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "gpx-analyzer-backup-")
	mockBackupService.AssertExpectations(t)
}
