package relay

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirbo/go-sensorsim/internal/models"
)

const insertQuery = `INSERT INTO "sensor_metrics" ("time", "sensorId", "metric", "value") VALUES ($1, $2, $3, $4)`

func TestDBStoreInsertsOneRowPerMetric(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	ts := time.UnixMilli(good.Timestamp).UTC()
	mock.ExpectBegin()
	for _, m := range []struct {
		name  string
		value float64
	}{
		{"temperature", good.Temperature},
		{"humidity", good.Humidity},
		{"pressure", good.Pressure},
		{"light_intensity", good.LightIntensity},
	} {
		mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WithArgs(ts, good.SensorID, m.name, m.value).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	store := NewDBStore(db, "sensor_metrics")
	if err := store.InsertReading(context.Background(), models.Envelope{Reading: good}); err != nil {
		t.Fatalf("InsertReading: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDBStoreRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cause := errors.New("relation does not exist")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertQuery)).WillReturnError(cause)
	mock.ExpectRollback()

	store := NewDBStore(db, "sensor_metrics")
	if err := store.InsertReading(context.Background(), models.Envelope{Reading: good}); !errors.Is(err, cause) {
		t.Errorf("err = %v, want %v", err, cause)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDBStoreQuotesTableName(t *testing.T) {
	s := NewDBStore(nil, `metrics"; DROP TABLE x; --`).(*dbStore)

	want := `INSERT INTO "metrics""; DROP TABLE x; --" (`
	if got := s.query[:len(want)]; got != want {
		t.Errorf("query = %q", s.query)
	}
}
