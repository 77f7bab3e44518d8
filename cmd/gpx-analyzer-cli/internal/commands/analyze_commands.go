package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/tracks"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// AnalyzeCommandHandler encapsulates logic for analyzing single GPX files via CLI.
type AnalyzeCommandHandler struct {
	parser   tracks.TrackParser
	analyzer tracks.TrackAnalyzer
	logger   logger.Logger
}

// NewAnalyzeCommandHandler initializes and returns an AnalyzeCommandHandler
// instance with configured logger, parser and analyzer.
func NewAnalyzeCommandHandler() (*AnalyzeCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	parser, analyzer, err := newAnalysisPipeline(loggerInstance)
	if err != nil {
		return nil, err
	}

	return &AnalyzeCommandHandler{
		parser:   parser,
		analyzer: analyzer,
		logger:   loggerInstance,
	}, nil
}

// metricsReport is the JSON shape of the analyze command output.
type metricsReport struct {
	File              string     `json:"file"`
	StartTime         *time.Time `json:"startTime,omitempty"`
	DistanceKm        float64    `json:"distanceKm"`
	TotalTimeS        int        `json:"totalTimeS"`
	MovingTimeS       int        `json:"movingTimeS"`
	AvgSpeedKmh       float64    `json:"avgSpeedKmh"`
	AvgMovingSpeedKmh float64    `json:"avgMovingSpeedKmh"`
	MaxSpeedKmh       float64    `json:"maxSpeedKmh"`
	AscentM           float64    `json:"ascentM"`
	DescentM          float64    `json:"descentM"`
	MinElevM          *float64   `json:"minElevM,omitempty"`
	MaxElevM          *float64   `json:"maxElevM,omitempty"`
}

func newMetricsReport(path string, metrics *tracks.RideMetrics) metricsReport {
	return metricsReport{
		File:              path,
		StartTime:         metrics.StartTime,
		DistanceKm:        metrics.DistanceM / 1000.0,
		TotalTimeS:        metrics.TotalTimeS,
		MovingTimeS:       metrics.MovingTimeS,
		AvgSpeedKmh:       metrics.AvgSpeedMps * 3.6,
		AvgMovingSpeedKmh: metrics.AvgMovingSpeedMps * 3.6,
		MaxSpeedKmh:       metrics.MaxSpeedMps * 3.6,
		AscentM:           metrics.AscentM,
		DescentM:          metrics.DescentM,
		MinElevM:          metrics.MinElevM,
		MaxElevM:          metrics.MaxElevM,
	}
}

// AnalyzeCmd computes and prints the ride metrics of a single GPX file
func (commandHandler *AnalyzeCommandHandler) AnalyzeCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		commandHandler.logger.Error("invalid json flag ", err)
		return
	}

	metrics, err := analyzeFile(commandHandler.parser, commandHandler.analyzer, inputFilePath)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	report := newMetricsReport(inputFilePath, metrics)

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			commandHandler.logger.Error(err)
		}
		return
	}

	fmt.Printf("File:             %s\n", report.File)
	if report.StartTime != nil {
		fmt.Printf("Start:            %s\n", report.StartTime.Format(time.RFC3339))
	}
	fmt.Printf("Distance:         %.3f km\n", report.DistanceKm)
	fmt.Printf("Total time:       %s\n", time.Duration(report.TotalTimeS)*time.Second)
	fmt.Printf("Moving time:      %s\n", time.Duration(report.MovingTimeS)*time.Second)
	fmt.Printf("Avg speed:        %.2f km/h\n", report.AvgSpeedKmh)
	fmt.Printf("Avg moving speed: %.2f km/h\n", report.AvgMovingSpeedKmh)
	fmt.Printf("Max speed:        %.2f km/h\n", report.MaxSpeedKmh)
	fmt.Printf("Ascent:           %.1f m\n", report.AscentM)
	fmt.Printf("Descent:          %.1f m\n", report.DescentM)
	if report.MinElevM != nil && report.MaxElevM != nil {
		fmt.Printf("Elevation:        %.1f m - %.1f m\n", *report.MinElevM, *report.MaxElevM)
	}
}

// InitAnalyzeCommands registers the analyze command
func InitAnalyzeCommands(rootCmd *cobra.Command) error {
	handler, err := NewAnalyzeCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create analyze command handler %w", err)
	}

	var analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Compute ride metrics of a GPX file",
		Run:   handler.AnalyzeCmd,
	}
	analyzeCmd.Flags().StringP("input-file", "", "", "Path to the GPX file to analyze")
	analyzeCmd.Flags().BoolP("json", "", false, "Print the metrics as JSON")
	rootCmd.AddCommand(analyzeCmd)

	return nil
}
