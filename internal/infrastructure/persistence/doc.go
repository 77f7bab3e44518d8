// Package persistence provides the GORM-backed repository implementations and
// the database connection factory switching between sqlite and postgres.
package persistence
