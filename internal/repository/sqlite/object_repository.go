package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skyguide/internal/domain"
)

const createObjectsTable = `
CREATE TABLE IF NOT EXISTS celestial_objects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	coordinates TEXT NOT NULL DEFAULT '',
	month TEXT NOT NULL DEFAULT '',
	best_viewing_time TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	visibility_rating TEXT NOT NULL DEFAULT '',
	information TEXT NOT NULL DEFAULT '',
	constellation TEXT NOT NULL DEFAULT '',
	magnitude TEXT NOT NULL DEFAULT '',
	hemisphere TEXT NOT NULL DEFAULT '',
	recommended_eyepiece TEXT NOT NULL DEFAULT ''
);
`

const selectObject = `
SELECT id, name, type, description, coordinates, month, best_viewing_time, image_url,
	visibility_rating, information, constellation, magnitude, hemisphere, recommended_eyepiece
FROM celestial_objects`

type CelestialObjectRepository struct {
	db *sql.DB
}

func NewCelestialObjectRepository(db *sql.DB) *CelestialObjectRepository {
	return &CelestialObjectRepository{db: db}
}

func (r *CelestialObjectRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createObjectsTable); err != nil {
		return fmt.Errorf("create celestial_objects table: %w", err)
	}
	return nil
}

func (r *CelestialObjectRepository) Create(ctx context.Context, obj *domain.CelestialObject) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO celestial_objects (name, type, description, coordinates, month, best_viewing_time, image_url,
	visibility_rating, information, constellation, magnitude, hemisphere, recommended_eyepiece)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		obj.Name,
		string(obj.Type),
		obj.Description,
		obj.Coordinates,
		obj.Month,
		obj.BestViewingTime,
		obj.ImageURL,
		obj.VisibilityRating,
		obj.Information,
		obj.Constellation,
		obj.Magnitude,
		obj.Hemisphere,
		obj.RecommendedEyepiece,
	)
	if err != nil {
		return 0, fmt.Errorf("insert celestial object: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("celestial object last insert id: %w", err)
	}
	obj.ID = id
	return id, nil
}

func (r *CelestialObjectRepository) Get(ctx context.Context, id int64) (*domain.CelestialObject, error) {
	row := r.db.QueryRowContext(ctx, selectObject+` WHERE id = ?`, id)
	obj, err := scanObject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return obj, err
}

func (r *CelestialObjectRepository) List(ctx context.Context) ([]domain.CelestialObject, error) {
	rows, err := r.db.QueryContext(ctx, selectObject+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list celestial objects: %w", err)
	}
	defer rows.Close()

	var objects []domain.CelestialObject
	for rows.Next() {
		obj, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		objects = append(objects, *obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate celestial objects: %w", err)
	}
	return objects, nil
}

func (r *CelestialObjectRepository) Update(ctx context.Context, obj *domain.CelestialObject) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE celestial_objects SET name = ?, type = ?, description = ?, coordinates = ?, month = ?,
	best_viewing_time = ?, image_url = ?, visibility_rating = ?, information = ?, constellation = ?,
	magnitude = ?, hemisphere = ?, recommended_eyepiece = ?
WHERE id = ?`,
		obj.Name,
		string(obj.Type),
		obj.Description,
		obj.Coordinates,
		obj.Month,
		obj.BestViewingTime,
		obj.ImageURL,
		obj.VisibilityRating,
		obj.Information,
		obj.Constellation,
		obj.Magnitude,
		obj.Hemisphere,
		obj.RecommendedEyepiece,
		obj.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update celestial object: %w", err)
	}
	return affected(res, "update celestial object")
}

func (r *CelestialObjectRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM celestial_objects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete celestial object: %w", err)
	}
	return affected(res, "delete celestial object")
}

func scanObject(row rowScanner) (*domain.CelestialObject, error) {
	var (
		obj     domain.CelestialObject
		objType string
	)
	if err := row.Scan(
		&obj.ID,
		&obj.Name,
		&objType,
		&obj.Description,
		&obj.Coordinates,
		&obj.Month,
		&obj.BestViewingTime,
		&obj.ImageURL,
		&obj.VisibilityRating,
		&obj.Information,
		&obj.Constellation,
		&obj.Magnitude,
		&obj.Hemisphere,
		&obj.RecommendedEyepiece,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan celestial object: %w", err)
	}
	obj.Type = domain.ObjectType(objType)
	return &obj, nil
}
