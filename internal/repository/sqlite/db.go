package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"skyguide/internal/repository"
)

// MemoryPath opens a database that lives only as long as its connection.
const MemoryPath = ":memory:"

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = MemoryPath
	}
	if !isMemory(path) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// an in-memory database is private to its connection, so keep exactly one
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return db, nil
}

func isMemory(path string) bool {
	return path == MemoryPath || strings.Contains(path, "mode=memory")
}

type initializer interface {
	Init(ctx context.Context) error
}

// NewStore builds every repository on db and creates their tables.
func NewStore(ctx context.Context, db *sql.DB) (*repository.Store, error) {
	objects := NewCelestialObjectRepository(db)
	observations := NewObservationRepository(db)
	guides := NewMonthlyGuideRepository(db)
	tips := NewTelescopeTipRepository(db)
	users := NewUserRepository(db)

	for _, repo := range []initializer{objects, observations, guides, tips, users} {
		if err := repo.Init(ctx); err != nil {
			return nil, err
		}
	}

	return &repository.Store{
		Objects:      objects,
		Observations: observations,
		Guides:       guides,
		Tips:         tips,
		Users:        users,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func affected(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return n > 0, nil
}

var (
	_ repository.CelestialObjectRepository = (*CelestialObjectRepository)(nil)
	_ repository.ObservationRepository     = (*ObservationRepository)(nil)
	_ repository.MonthlyGuideRepository    = (*MonthlyGuideRepository)(nil)
	_ repository.TelescopeTipRepository    = (*TelescopeTipRepository)(nil)
	_ repository.UserRepository            = (*UserRepository)(nil)
)
