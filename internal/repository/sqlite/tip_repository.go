package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skyguide/internal/domain"
)

const createTipsTable = `
CREATE TABLE IF NOT EXISTS telescope_tips (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT ''
);
`

const selectTip = `SELECT id, title, content, category, image_url FROM telescope_tips`

type TelescopeTipRepository struct {
	db *sql.DB
}

func NewTelescopeTipRepository(db *sql.DB) *TelescopeTipRepository {
	return &TelescopeTipRepository{db: db}
}

func (r *TelescopeTipRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTipsTable); err != nil {
		return fmt.Errorf("create telescope_tips table: %w", err)
	}
	return nil
}

func (r *TelescopeTipRepository) Create(ctx context.Context, tip *domain.TelescopeTip) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO telescope_tips (title, content, category, image_url)
VALUES (?, ?, ?, ?)`,
		tip.Title,
		tip.Content,
		tip.Category,
		tip.ImageURL,
	)
	if err != nil {
		return 0, fmt.Errorf("insert telescope tip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("telescope tip last insert id: %w", err)
	}
	tip.ID = id
	return id, nil
}

func (r *TelescopeTipRepository) Get(ctx context.Context, id int64) (*domain.TelescopeTip, error) {
	var tip domain.TelescopeTip
	err := r.db.QueryRowContext(ctx, selectTip+` WHERE id = ?`, id).
		Scan(&tip.ID, &tip.Title, &tip.Content, &tip.Category, &tip.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan telescope tip: %w", err)
	}
	return &tip, nil
}

func (r *TelescopeTipRepository) List(ctx context.Context) ([]domain.TelescopeTip, error) {
	return r.query(ctx, selectTip+` ORDER BY id`)
}

func (r *TelescopeTipRepository) ListByCategory(ctx context.Context, category string) ([]domain.TelescopeTip, error) {
	return r.query(ctx, selectTip+` WHERE category = ? ORDER BY id`, category)
}

func (r *TelescopeTipRepository) query(ctx context.Context, query string, args ...any) ([]domain.TelescopeTip, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list telescope tips: %w", err)
	}
	defer rows.Close()

	var tips []domain.TelescopeTip
	for rows.Next() {
		var tip domain.TelescopeTip
		if err := rows.Scan(&tip.ID, &tip.Title, &tip.Content, &tip.Category, &tip.ImageURL); err != nil {
			return nil, fmt.Errorf("scan telescope tip: %w", err)
		}
		tips = append(tips, tip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate telescope tips: %w", err)
	}
	return tips, nil
}

func (r *TelescopeTipRepository) Update(ctx context.Context, tip *domain.TelescopeTip) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE telescope_tips SET title = ?, content = ?, category = ?, image_url = ?
WHERE id = ?`,
		tip.Title,
		tip.Content,
		tip.Category,
		tip.ImageURL,
		tip.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update telescope tip: %w", err)
	}
	return affected(res, "update telescope tip")
}

func (r *TelescopeTipRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM telescope_tips WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete telescope tip: %w", err)
	}
	return affected(res, "delete telescope tip")
}
