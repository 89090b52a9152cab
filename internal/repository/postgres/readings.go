// FilePath: internal/repository/postgres/readings.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/urbansense/wastehub/internal/database"
	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/models"
	"github.com/urbansense/wastehub/internal/repository"
)

// ReadingRepo reads sensor rows from the readings store. The timestamp
// column is fixed-width ISO-8601 TEXT written by the ingestion pipeline, so
// ORDER BY and the cutoff comparison are lexical and still chronological.
type ReadingRepo struct {
	PostgresBaseRepo
}

// NewReadingRepository creates the readings repository and ensures its
// schema exists.
func NewReadingRepository(db database.DB) (repository.ReadingRepository, error) {
	repo := &ReadingRepo{PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ReadingRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sensor_readings (
			device_id TEXT NOT NULL,
			sensor_type TEXT NOT NULL,
			waste_type TEXT NOT NULL DEFAULT '',
			value DOUBLE PRECISION NOT NULL,
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_readings_device_timestamp
			ON sensor_readings(device_id, timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_readings_timestamp
			ON sensor_readings(timestamp)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize readings schema", err)
		}
	}
	return nil
}

func (r *ReadingRepo) LatestByDevice(ctx context.Context, deviceID string, limit int) ([]models.Reading, error) {
	readings := []models.Reading{}
	query := `
		SELECT device_id, sensor_type, waste_type, value, timestamp
		FROM sensor_readings
		WHERE device_id = $1
		ORDER BY timestamp DESC
		LIMIT $2`

	err := r.db.GetDB().SelectContext(ctx, &readings, query, deviceID, limit)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.NewDatabaseError("failed to get device readings", err)
	}
	return readings, nil
}

func (r *ReadingRepo) Since(ctx context.Context, cutoff string) ([]models.Reading, error) {
	readings := []models.Reading{}
	query := `
		SELECT device_id, sensor_type, waste_type, value, timestamp
		FROM sensor_readings
		WHERE timestamp > $1`

	err := r.db.GetDB().SelectContext(ctx, &readings, query, cutoff)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.NewDatabaseError("failed to get readings since cutoff", err)
	}
	return readings, nil
}
