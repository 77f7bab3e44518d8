// Package tracks defines the track point and ride metric types shared between
// the GPX parsing and analysis infrastructure and the application services.
package tracks
