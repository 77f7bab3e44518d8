//go:build unit
// +build unit

package v1

import (
	"context"
	"mime/multipart"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"

	"github.com/stretchr/testify/mock"
)

// MockRideUploadService is a mock implementation of RideUploadService
type MockRideUploadService struct {
	mock.Mock
}

func (m *MockRideUploadService) Upload(ctx context.Context, form *multipart.Form, opts rides.UploadOptions) (*rides.Ride, error) {
	args := m.Called(ctx, form, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rides.Ride), args.Error(1)
}

// MockRideMetadataService is a mock implementation of RideMetadataService
type MockRideMetadataService struct {
	mock.Mock
}

func (m *MockRideMetadataService) List(ctx context.Context, query *rides.RideQuery) ([]*rides.Ride, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rides.Ride), args.Error(1)
}

func (m *MockRideMetadataService) GetByID(ctx context.Context, rideID string) (*rides.Ride, error) {
	args := m.Called(ctx, rideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rides.Ride), args.Error(1)
}

func (m *MockRideMetadataService) DeleteByID(ctx context.Context, rideID string) error {
	args := m.Called(ctx, rideID)
	return args.Error(0)
}

// MockRideAnalysisService is a mock implementation of RideAnalysisService
type MockRideAnalysisService struct {
	mock.Mock
}

func (m *MockRideAnalysisService) AnalyzeByID(ctx context.Context, rideID string) (*rides.RideAnalysis, error) {
	args := m.Called(ctx, rideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rides.RideAnalysis), args.Error(1)
}

// MockRideDownloadService is a mock implementation of RideDownloadService
type MockRideDownloadService struct {
	mock.Mock
}

func (m *MockRideDownloadService) DownloadByID(ctx context.Context, rideID string) (*rides.TrackDownload, error) {
	args := m.Called(ctx, rideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rides.TrackDownload), args.Error(1)
}

// MockHorseService is a mock implementation of HorseService
type MockHorseService struct {
	mock.Mock
}

func (m *MockHorseService) List(ctx context.Context) ([]*horses.HorseSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*horses.HorseSummary), args.Error(1)
}

func (m *MockHorseService) Create(ctx context.Context, name string, notes *string) (*horses.Horse, error) {
	args := m.Called(ctx, name, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*horses.Horse), args.Error(1)
}

func (m *MockHorseService) GetByID(ctx context.Context, horseID string) (*horses.Horse, error) {
	args := m.Called(ctx, horseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*horses.Horse), args.Error(1)
}

func (m *MockHorseService) UpdateByID(ctx context.Context, horseID string, update horses.HorseUpdate) (*horses.Horse, error) {
	args := m.Called(ctx, horseID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*horses.Horse), args.Error(1)
}

func (m *MockHorseService) DeleteByID(ctx context.Context, horseID string) error {
	args := m.Called(ctx, horseID)
	return args.Error(0)
}

// MockReportService is a mock implementation of ReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Summary(ctx context.Context) (*rides.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rides.Summary), args.Error(1)
}

func (m *MockReportService) HorseReport(ctx context.Context, horseID string) (*rides.HorseReport, error) {
	args := m.Called(ctx, horseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rides.HorseReport), args.Error(1)
}

// MockBackupService is a mock implementation of BackupService
type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) Archive(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
