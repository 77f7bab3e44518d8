package commands

import (
	"fmt"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/tracks"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// SummaryCommandHandler encapsulates logic for aggregating several GPX files via CLI.
type SummaryCommandHandler struct {
	parser   tracks.TrackParser
	analyzer tracks.TrackAnalyzer
	logger   logger.Logger
}

// NewSummaryCommandHandler initializes and returns a SummaryCommandHandler
// instance with configured logger, parser and analyzer.
func NewSummaryCommandHandler() (*SummaryCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	parser, analyzer, err := newAnalysisPipeline(loggerInstance)
	if err != nil {
		return nil, err
	}

	return &SummaryCommandHandler{
		parser:   parser,
		analyzer: analyzer,
		logger:   loggerInstance,
	}, nil
}

// SummaryCmd analyzes every given GPX file and prints one row per file plus totals
func (commandHandler *SummaryCommandHandler) SummaryCmd(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		commandHandler.logger.Error("no GPX files given")
		return
	}

	var totalKm float64
	var totalTime time.Duration
	var maxSpeedKmh float64
	analyzed := 0

	fmt.Printf("%-40s %12s %10s %12s\n", "FILE", "DISTANCE", "TIME", "MAX SPEED")
	for _, path := range args {
		metrics, err := analyzeFile(commandHandler.parser, commandHandler.analyzer, path)
		if err != nil {
			commandHandler.logger.Warn("Skipping ", path, ": ", err)
			continue
		}

		distanceKm := metrics.DistanceM / 1000.0
		duration := time.Duration(metrics.TotalTimeS) * time.Second
		speedKmh := metrics.MaxSpeedMps * 3.6

		fmt.Printf("%-40s %9.3f km %10s %9.2f km/h\n", path, distanceKm, duration, speedKmh)

		totalKm += distanceKm
		totalTime += duration
		if speedKmh > maxSpeedKmh {
			maxSpeedKmh = speedKmh
		}
		analyzed++
	}

	if analyzed == 0 {
		commandHandler.logger.Error("none of the given files could be analyzed")
		return
	}

	fmt.Printf("\n%d files, %.3f km, %s total, %.2f km/h top speed\n", analyzed, totalKm, totalTime, maxSpeedKmh)
}

// InitSummaryCommands registers the summary command
func InitSummaryCommands(rootCmd *cobra.Command) error {
	handler, err := NewSummaryCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create summary command handler %w", err)
	}

	var summaryCmd = &cobra.Command{
		Use:   "summary [files...]",
		Short: "Aggregate ride metrics over several GPX files",
		Args:  cobra.MinimumNArgs(1),
		Run:   handler.SummaryCmd,
	}
	rootCmd.AddCommand(summaryCmd)

	return nil
}
