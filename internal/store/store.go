// Package store reads clinic master data from SQLite and assembles the
// immutable snapshots the pricing engine consumes.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/clinicprice/internal/db"
	"github.com/Simplici0/clinicprice/internal/pricing"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQLite-backed master data repository.
type Store struct {
	db *sql.DB
}

// New wraps an open database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return db.Health(ctx, s.db)
}

// Snapshot is a consistent view of everything needed to price the clinic's
// services.
type Snapshot struct {
	Settings pricing.GlobalSettings
	Capacity pricing.Capacity
	Catalog  pricing.Catalog
	Services []ServiceRecord
}

// Snapshot reads settings, capacity, catalog and every service inside one
// transaction so the engine never sees a half-applied edit.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	return s.snapshot(ctx, scopeAll)
}

// ServiceSnapshot is Snapshot restricted to a single service. It returns
// ErrNotFound when the service does not exist.
func (s *Store) ServiceSnapshot(ctx context.Context, id int64) (Snapshot, error) {
	if id <= 0 {
		return Snapshot{}, fmt.Errorf("service %d: %w", id, ErrNotFound)
	}
	snap, err := s.snapshot(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	if len(snap.Services) == 0 {
		return Snapshot{}, fmt.Errorf("service %d: %w", id, ErrNotFound)
	}
	return snap, nil
}

// PricingInputs is Snapshot without services, for pricing drafts.
func (s *Store) PricingInputs(ctx context.Context) (Snapshot, error) {
	return s.snapshot(ctx, scopeNone)
}

const (
	scopeNone int64 = -1
	scopeAll  int64 = 0
)

// snapshot loads master data; scope selects no services, all of them, or a
// single service id.
func (s *Store) snapshot(ctx context.Context, scope int64) (Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var snap Snapshot
	if snap.Settings, err = getSettings(ctx, tx); err != nil {
		return Snapshot{}, err
	}
	if snap.Capacity, err = getCapacity(ctx, tx); err != nil {
		return Snapshot{}, err
	}
	if snap.Catalog, err = loadCatalog(ctx, tx); err != nil {
		return Snapshot{}, err
	}
	if scope == scopeNone {
		return snap, nil
	}
	if snap.Services, err = listServices(ctx, tx, scope); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
