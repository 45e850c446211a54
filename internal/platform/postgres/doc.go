// Package postgres provides PostgreSQL implementations of the store
// interfaces. It depends on the pgx driver through database/sql and maps
// driver-level errors to the sentinel errors defined in the store package.
package postgres
