package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"skyguide/internal/domain"
)

const createGuidesTable = `
CREATE TABLE IF NOT EXISTS monthly_guides (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	month TEXT NOT NULL,
	year INTEGER NOT NULL,
	headline TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	hemisphere TEXT NOT NULL,
	featured_objects TEXT NOT NULL DEFAULT '[]'
);
`

const selectGuide = `
SELECT id, month, year, headline, content, hemisphere, featured_objects
FROM monthly_guides`

type MonthlyGuideRepository struct {
	db *sql.DB
}

func NewMonthlyGuideRepository(db *sql.DB) *MonthlyGuideRepository {
	return &MonthlyGuideRepository{db: db}
}

func (r *MonthlyGuideRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createGuidesTable); err != nil {
		return fmt.Errorf("create monthly_guides table: %w", err)
	}
	return nil
}

func (r *MonthlyGuideRepository) Create(ctx context.Context, guide *domain.MonthlyGuide) (int64, error) {
	featured, err := encodeIDs(guide.FeaturedObjects)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO monthly_guides (month, year, headline, content, hemisphere, featured_objects)
VALUES (?, ?, ?, ?, ?, ?)`,
		guide.Month,
		guide.Year,
		guide.Headline,
		guide.Content,
		guide.Hemisphere,
		featured,
	)
	if err != nil {
		return 0, fmt.Errorf("insert monthly guide: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("monthly guide last insert id: %w", err)
	}
	guide.ID = id
	return id, nil
}

func (r *MonthlyGuideRepository) Get(ctx context.Context, id int64) (*domain.MonthlyGuide, error) {
	row := r.db.QueryRowContext(ctx, selectGuide+` WHERE id = ?`, id)
	guide, err := scanGuide(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return guide, err
}

func (r *MonthlyGuideRepository) List(ctx context.Context) ([]domain.MonthlyGuide, error) {
	rows, err := r.db.QueryContext(ctx, selectGuide+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list monthly guides: %w", err)
	}
	defer rows.Close()

	var guides []domain.MonthlyGuide
	for rows.Next() {
		guide, err := scanGuide(rows)
		if err != nil {
			return nil, err
		}
		guides = append(guides, *guide)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly guides: %w", err)
	}
	return guides, nil
}

func (r *MonthlyGuideRepository) Update(ctx context.Context, guide *domain.MonthlyGuide) (bool, error) {
	featured, err := encodeIDs(guide.FeaturedObjects)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE monthly_guides SET month = ?, year = ?, headline = ?, content = ?, hemisphere = ?, featured_objects = ?
WHERE id = ?`,
		guide.Month,
		guide.Year,
		guide.Headline,
		guide.Content,
		guide.Hemisphere,
		featured,
		guide.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update monthly guide: %w", err)
	}
	return affected(res, "update monthly guide")
}

func (r *MonthlyGuideRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM monthly_guides WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete monthly guide: %w", err)
	}
	return affected(res, "delete monthly guide")
}

func scanGuide(row rowScanner) (*domain.MonthlyGuide, error) {
	var (
		guide    domain.MonthlyGuide
		featured string
	)
	if err := row.Scan(
		&guide.ID,
		&guide.Month,
		&guide.Year,
		&guide.Headline,
		&guide.Content,
		&guide.Hemisphere,
		&featured,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan monthly guide: %w", err)
	}
	if err := json.Unmarshal([]byte(featured), &guide.FeaturedObjects); err != nil {
		return nil, fmt.Errorf("decode featured objects: %w", err)
	}
	return &guide, nil
}

func encodeIDs(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode featured objects: %w", err)
	}
	return string(raw), nil
}
