package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

type DB struct {
	Conn *sqlx.DB
}

func NewDBConn(connString string) (DB, error) {
	sqlDB, err := otelsql.Open("postgres", connString,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName("ticketledger"),
	)
	if err != nil {
		return DB{}, fmt.Errorf("could not open postgres connection: %w", err)
	}

	return DB{Conn: sqlx.NewDb(sqlDB, "postgres")}, nil
}

func (db *DB) Close() error {
	return db.Conn.Close()
}

// MigrateSchema creates the tables if they are missing. It is meant to run once
// at process start.
func (db *DB) MigrateSchema() error {
	if _, err := db.Conn.Exec(schema); err != nil {
		return fmt.Errorf("could not migrate schema: %w", err)
	}

	return nil
}
