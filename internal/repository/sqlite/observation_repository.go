package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"skyguide/internal/domain"
)

const createObservationsTable = `
CREATE TABLE IF NOT EXISTS observations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	object_id INTEGER NOT NULL,
	date_added DATETIME NOT NULL,
	is_observed INTEGER NOT NULL DEFAULT 0,
	observation_notes TEXT NOT NULL DEFAULT '',
	planned_date TEXT NOT NULL DEFAULT ''
);
`

const createObservationsUserIndex = `CREATE INDEX IF NOT EXISTS idx_observations_user ON observations(user_id)`

const selectObservation = `
SELECT id, user_id, object_id, date_added, is_observed, observation_notes, planned_date
FROM observations`

type ObservationRepository struct {
	db *sql.DB
}

func NewObservationRepository(db *sql.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

func (r *ObservationRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createObservationsTable); err != nil {
		return fmt.Errorf("create observations table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createObservationsUserIndex); err != nil {
		return fmt.Errorf("create observations index: %w", err)
	}
	return nil
}

func (r *ObservationRepository) Create(ctx context.Context, obs *domain.Observation) (int64, error) {
	if obs.DateAdded.IsZero() {
		obs.DateAdded = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO observations (user_id, object_id, date_added, is_observed, observation_notes, planned_date)
VALUES (?, ?, ?, ?, ?, ?)`,
		obs.UserID,
		obs.ObjectID,
		obs.DateAdded,
		obs.IsObserved,
		obs.ObservationNotes,
		obs.PlannedDate,
	)
	if err != nil {
		return 0, fmt.Errorf("insert observation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("observation last insert id: %w", err)
	}
	obs.ID = id
	return id, nil
}

func (r *ObservationRepository) Get(ctx context.Context, id int64) (*domain.Observation, error) {
	row := r.db.QueryRowContext(ctx, selectObservation+` WHERE id = ?`, id)
	obs, err := scanObservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return obs, err
}

func (r *ObservationRepository) List(ctx context.Context) ([]domain.Observation, error) {
	return r.query(ctx, selectObservation+` ORDER BY id`)
}

func (r *ObservationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Observation, error) {
	return r.query(ctx, selectObservation+` WHERE user_id = ? ORDER BY id`, userID)
}

func (r *ObservationRepository) query(ctx context.Context, query string, args ...any) ([]domain.Observation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()

	var result []domain.Observation
	for rows.Next() {
		obs, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}
	return result, nil
}

func (r *ObservationRepository) Update(ctx context.Context, obs *domain.Observation) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE observations SET user_id = ?, object_id = ?, is_observed = ?, observation_notes = ?, planned_date = ?
WHERE id = ?`,
		obs.UserID,
		obs.ObjectID,
		obs.IsObserved,
		obs.ObservationNotes,
		obs.PlannedDate,
		obs.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update observation: %w", err)
	}
	return affected(res, "update observation")
}

func (r *ObservationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM observations WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete observation: %w", err)
	}
	return affected(res, "delete observation")
}

func scanObservation(row rowScanner) (*domain.Observation, error) {
	var obs domain.Observation
	if err := row.Scan(
		&obs.ID,
		&obs.UserID,
		&obs.ObjectID,
		&obs.DateAdded,
		&obs.IsObserved,
		&obs.ObservationNotes,
		&obs.PlannedDate,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan observation: %w", err)
	}
	return &obs, nil
}
