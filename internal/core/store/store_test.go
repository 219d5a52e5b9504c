package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fedisieve/fedisieve/internal/core/db"
	"github.com/fedisieve/fedisieve/internal/types"
)

const validDoc = `{
	"specVersion": "lemmy-filters/1.0",
	"rules": [{"name": "spam", "any": [{"field": "title", "op": "word", "pattern": "spam"}]}]
}`

func testStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open("sqlite://" + filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.MigrateUp(database); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	s, err := New(database)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func TestAdd(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	spec, err := s.Add(ctx, "house rules", []byte(validDoc))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if spec.ID == "" {
		t.Error("Add returned empty ID")
	}
	if _, err := types.ParseSpecID(string(spec.ID)); err != nil {
		t.Errorf("Add returned non-UUID ID %q: %v", spec.ID, err)
	}
	if spec.Position != 1 {
		t.Errorf("expected position 1, got %d", spec.Position)
	}
	if !spec.Enabled {
		t.Error("expected new specification to be enabled")
	}

	second, err := s.Add(ctx, "more rules", []byte(validDoc))
	if err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	if second.Position != 2 {
		t.Errorf("expected position 2, got %d", second.Position)
	}
}

func TestAdd_RejectsInvalidDocument(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "broken", []byte(`{"specVersion": "lemmy-filters/1.0", "rules": []}`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, types.ErrNoRules) {
		t.Errorf("expected ErrNoRules, got %v", err)
	}

	// The rejected document must not have been stored.
	specs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(specs) != 0 {
		t.Errorf("expected empty store after rejected Add, got %d rows", len(specs))
	}
}

func TestListAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.Add(ctx, "first", []byte(validDoc))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := s.Add(ctx, "second", []byte(validDoc)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	specs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specifications, got %d", len(specs))
	}
	if specs[0].Name != "first" || specs[1].Name != "second" {
		t.Errorf("expected position order [first, second], got [%s, %s]",
			specs[0].Name, specs[1].Name)
	}

	got, err := s.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "first" {
		t.Errorf("expected name %q, got %q", "first", got.Name)
	}
	if string(got.Document) != validDoc {
		t.Error("stored document does not round-trip verbatim")
	}

	_, err = s.Get(ctx, types.NewSpecID())
	if !errors.Is(err, types.ErrSpecNotFound) {
		t.Errorf("expected ErrSpecNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	spec, err := s.Add(ctx, "doomed", []byte(validDoc))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := s.Remove(ctx, spec.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := s.Get(ctx, spec.ID); !errors.Is(err, types.ErrSpecNotFound) {
		t.Errorf("expected ErrSpecNotFound after Remove, got %v", err)
	}
	if err := s.Remove(ctx, spec.ID); !errors.Is(err, types.ErrSpecNotFound) {
		t.Errorf("expected ErrSpecNotFound on double Remove, got %v", err)
	}
}

func TestSetEnabled(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	spec, err := s.Add(ctx, "toggled", []byte(validDoc))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := s.SetEnabled(ctx, spec.ID, false); err != nil {
		t.Fatalf("SetEnabled failed: %v", err)
	}
	got, err := s.Get(ctx, spec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Enabled {
		t.Error("expected specification to be disabled")
	}

	if err := s.SetEnabled(ctx, spec.ID, true); err != nil {
		t.Fatalf("SetEnabled failed: %v", err)
	}
	got, err = s.Get(ctx, spec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Enabled {
		t.Error("expected specification to be re-enabled")
	}

	if err := s.SetEnabled(ctx, types.NewSpecID(), false); !errors.Is(err, types.ErrSpecNotFound) {
		t.Errorf("expected ErrSpecNotFound, got %v", err)
	}
}

func TestLoadActive(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	kept, err := s.Add(ctx, "kept", []byte(validDoc))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	dropped, err := s.Add(ctx, "dropped", []byte(validDoc))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.SetEnabled(ctx, dropped.ID, false); err != nil {
		t.Fatalf("SetEnabled failed: %v", err)
	}

	compiled, err := s.LoadActive(ctx)
	if err != nil {
		t.Fatalf("LoadActive failed: %v", err)
	}
	if len(compiled) != 1 {
		t.Fatalf("expected 1 active specification, got %d", len(compiled))
	}
	if compiled[0].ID != kept.ID || compiled[0].Name != "kept" {
		t.Errorf("expected (%s, kept), got (%s, %s)", kept.ID, compiled[0].ID, compiled[0].Name)
	}

	// Compiled specifications from the store evaluate like any other.
	if result := compiled[0].Apply(types.FieldValues{Title: "obvious spam post"}); result == nil {
		t.Error("expected stored specification to match")
	} else if result.SpecID != kept.ID {
		t.Errorf("verdict carries SpecID %s, expected %s", result.SpecID, kept.ID)
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	database, err := db.Open("sqlite://" + filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := db.MigrateUp(database); err != nil {
		t.Fatalf("first MigrateUp failed: %v", err)
	}
	if err := db.MigrateUp(database); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}

	statuses, err := db.MigrateStatus(database)
	if err != nil {
		t.Fatalf("MigrateStatus failed: %v", err)
	}
	for _, s := range statuses {
		if !s.Applied {
			t.Errorf("migration %s not applied", s.ID)
		}
	}
}
