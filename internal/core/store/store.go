// Package store persists user-authored filter specifications.
//
// Documents are validated (compiled) before they are written: a document
// that fails validation never reaches the table, so everything the store
// returns is loadable. Raw JSON is stored verbatim and re-compiled on
// read, which lets a future schema-version bump re-validate the whole
// set instead of trusting stale rows.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fedisieve/fedisieve/internal/core/db"
	"github.com/fedisieve/fedisieve/internal/filter"
	"github.com/fedisieve/fedisieve/internal/types"
)

// Spec is one stored specification row plus its compiled form.
type Spec struct {
	ID        types.SpecID
	Name      string
	Document  []byte
	Position  int
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// specRow mirrors the specifications table for sqlx scanning.
type specRow struct {
	SpecID    string    `db:"spec_id"`
	Name      string    `db:"name"`
	Document  string    `db:"document"`
	Position  int       `db:"position"`
	Enabled   bool      `db:"enabled"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r specRow) spec() Spec {
	return Spec{
		ID:        types.SpecID(r.SpecID),
		Name:      r.Name,
		Document:  []byte(r.Document),
		Position:  r.Position,
		Enabled:   r.Enabled,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Store provides CRUD over stored specifications.
type Store struct {
	queries *db.Queries
}

// New creates a Store over an opened, migrated database.
func New(database *sqlx.DB) (*Store, error) {
	queries, err := db.LoadQueries(database)
	if err != nil {
		return nil, fmt.Errorf("failed to load queries: %w", err)
	}
	return &Store{queries: queries}, nil
}

// Add validates a raw document and inserts it at the end of the priority
// order. A ValidationError blocks the insert entirely; an invalid
// document must never be saved (it would poison every later load).
func (s *Store) Add(ctx context.Context, name string, document []byte) (Spec, error) {
	if _, err := filter.Load(document); err != nil {
		return Spec{}, err
	}

	var maxPos int
	if err := s.queries.Get(ctx, "max-spec-position", &maxPos); err != nil {
		return Spec{}, fmt.Errorf("failed to query position: %w", err)
	}

	now := time.Now().UTC()
	spec := Spec{
		ID:        types.NewSpecID(),
		Name:      name,
		Document:  document,
		Position:  maxPos + 1,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.queries.Exec(ctx, "insert-spec",
		string(spec.ID), spec.Name, string(spec.Document), spec.Position,
		spec.Enabled, spec.CreatedAt, spec.UpdatedAt)
	if err != nil {
		return Spec{}, fmt.Errorf("failed to insert specification: %w", err)
	}

	return spec, nil
}

// List returns all stored specifications in position order, enabled and
// disabled alike. Callers building an active set filter on Enabled.
func (s *Store) List(ctx context.Context) ([]Spec, error) {
	var rows []specRow
	if err := s.queries.Select(ctx, "list-specs", &rows); err != nil {
		return nil, fmt.Errorf("failed to list specifications: %w", err)
	}

	specs := make([]Spec, 0, len(rows))
	for _, r := range rows {
		specs = append(specs, r.spec())
	}
	return specs, nil
}

// Get returns one stored specification by ID.
func (s *Store) Get(ctx context.Context, id types.SpecID) (Spec, error) {
	var row specRow
	err := s.queries.Get(ctx, "get-spec", &row, string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return Spec{}, types.ErrSpecNotFound
	}
	if err != nil {
		return Spec{}, fmt.Errorf("failed to get specification: %w", err)
	}
	return row.spec(), nil
}

// Remove deletes a stored specification.
func (s *Store) Remove(ctx context.Context, id types.SpecID) error {
	res, err := s.queries.Exec(ctx, "delete-spec", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete specification: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ErrSpecNotFound
	}
	return nil
}

// SetEnabled toggles a stored specification in or out of the active set
// without losing it.
func (s *Store) SetEnabled(ctx context.Context, id types.SpecID, enabled bool) error {
	res, err := s.queries.Exec(ctx, "set-spec-enabled", enabled, time.Now().UTC(), string(id))
	if err != nil {
		return fmt.Errorf("failed to update specification: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ErrSpecNotFound
	}
	return nil
}

// LoadActive compiles every enabled stored specification in position
// order, ready to append to an engine's set. A stored document failing
// compilation is surfaced, not skipped: the set must stay consistent
// with what the user saved.
func (s *Store) LoadActive(ctx context.Context) ([]*filter.CompiledSpecification, error) {
	specs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var compiled []*filter.CompiledSpecification
	for _, spec := range specs {
		if !spec.Enabled {
			continue
		}
		cs, err := filter.Load(spec.Document)
		if err != nil {
			return nil, fmt.Errorf("stored specification %s (%s): %w", spec.ID, spec.Name, err)
		}
		cs.ID = spec.ID
		cs.Name = spec.Name
		compiled = append(compiled, cs)
	}
	return compiled, nil
}
