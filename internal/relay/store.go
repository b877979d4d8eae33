package relay

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kirbo/go-sensorsim/internal/models"
)

type Store interface {
	InsertReading(ctx context.Context, env models.Envelope) error
}

// dbStore writes one row per metric into a narrow metrics table:
//
//	CREATE TABLE <table> ("time" timestamptz, "sensorId" integer, "metric" text, "value" double precision)
type dbStore struct {
	db    *sql.DB
	query string
}

func NewDBStore(db *sql.DB, table string) Store {
	return &dbStore{
		db:    db,
		query: fmt.Sprintf(`INSERT INTO %s ("time", "sensorId", "metric", "value") VALUES ($1, $2, $3, $4)`, pq.QuoteIdentifier(table)),
	}
}

type metric struct {
	name  string
	value float64
}

func metrics(r models.SensorReading) []metric {
	return []metric{
		{"temperature", r.Temperature},
		{"humidity", r.Humidity},
		{"pressure", r.Pressure},
		{"light_intensity", r.LightIntensity},
	}
}

func (store *dbStore) InsertReading(ctx context.Context, env models.Envelope) error {
	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	ts := time.UnixMilli(env.Reading.Timestamp).UTC()
	for _, m := range metrics(env.Reading) {
		if _, err := tx.ExecContext(ctx, store.query, ts, env.Reading.SensorID, m.name, m.value); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s for sensor %d: %w", m.name, env.Reading.SensorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
