package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSqliteFileName is the sqlite database file used when DATABASE_URL is unset.
const DefaultSqliteFileName = "gpx_analyzer.db"

// DatabaseSettingsFromURL converts a DATABASE_URL style connection string into
// DatabaseSettings. Supported schemes:
//
//   - postgres:// and postgresql:// (driver suffixes such as +psycopg2 are
//     stripped) select the postgres driver; the normalized URL is the DSN.
//   - sqlite:///relative/path and sqlite:////absolute/path select the sqlite
//     driver with the file path as DSN.
func DatabaseSettingsFromURL(raw string) (DatabaseSettings, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return DatabaseSettings{}, fmt.Errorf("empty database URL")
	}

	scheme, rest, found := strings.Cut(url, "://")
	if !found {
		return DatabaseSettings{}, fmt.Errorf("database URL %q has no scheme", raw)
	}

	// Driver suffixes (postgresql+psycopg2, sqlite+aiosqlite, ...) carry no
	// meaning here; only the base scheme selects the driver.
	if base, _, hasDriver := strings.Cut(scheme, "+"); hasDriver {
		scheme = base
	}

	switch scheme {
	case "postgres", "postgresql":
		return DatabaseSettings{
			Type: PostgresDbType,
			DSN:  "postgres://" + rest,
		}, nil
	case "sqlite":
		path := rest
		if strings.HasPrefix(path, "//") {
			// sqlite:////data/file.db denotes an absolute path
			path = path[1:]
		} else {
			// sqlite:///file.db denotes a path relative to the working directory
			path = strings.TrimPrefix(path, "/")
		}
		if path == "" {
			return DatabaseSettings{}, fmt.Errorf("sqlite URL %q has no file path", raw)
		}
		return DatabaseSettings{
			Type: SqliteDbType,
			DSN:  path,
		}, nil
	default:
		return DatabaseSettings{}, fmt.Errorf("unsupported database URL scheme: %s", scheme)
	}
}

// DefaultSqliteSettings returns sqlite settings pointing at the persistent disk
// mount when available (/data), falling back to a local data directory.
func DefaultSqliteSettings() DatabaseSettings {
	for _, base := range []string{"/data", "data"} {
		if err := os.MkdirAll(base, 0750); err != nil {
			continue
		}
		return DatabaseSettings{
			Type: SqliteDbType,
			DSN:  filepath.Join(base, DefaultSqliteFileName),
		}
	}
	return DatabaseSettings{
		Type: SqliteDbType,
		DSN:  DefaultSqliteFileName,
	}
}
