package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rolfovo/gpx-analyzer/internal/domain/tracks"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/analysis"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/config"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// analyzeFile parses a GPX file from disk and computes its ride metrics.
func analyzeFile(parser tracks.TrackParser, analyzer tracks.TrackAnalyzer, path string) (*tracks.RideMetrics, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	points, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	metrics, err := analyzer.Compute(points)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", path, err)
	}

	return metrics, nil
}

// newAnalysisPipeline builds the shared parser and analyzer pair.
func newAnalysisPipeline(loggerInstance logger.Logger) (tracks.TrackParser, tracks.TrackAnalyzer, error) {
	parser, err := analysis.NewGpxParser(loggerInstance)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GPX parser: %w", err)
	}

	analyzer, err := analysis.NewMetricsAnalyzer(loggerInstance)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create metrics analyzer: %w", err)
	}

	return parser, analyzer, nil
}
