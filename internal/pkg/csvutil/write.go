// Package csvutil provides helper functions for writing CSV content into zip
// archives.
package csvutil

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
)

// WriteEntry adds a CSV file with the given rows to the archive.
func WriteEntry(archive *zip.Writer, name string, rows [][]string) error {
	entry, err := archive.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", name, err)
	}

	writer := csv.NewWriter(entry)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", name, err)
	}
	return nil
}
