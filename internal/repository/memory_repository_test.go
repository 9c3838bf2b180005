package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"sik-configurator/internal/model"
)

func newProfile(name string, updated time.Time) *model.Profile {
	return &model.Profile{
		ID:         uuid.New(),
		Name:       name,
		Parameters: model.ParameterSet{"S3": "25"},
		CreatedAt:  updated,
		UpdatedAt:  updated,
	}
}

func TestMemoryProfileRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProfileRepository()
	profile := newProfile("Field kit", time.Now())

	if err := repo.Create(ctx, profile); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, profile); err == nil {
		t.Error("expected duplicate id to be rejected")
	}

	profile.Parameters["S3"] = "99"
	stored, err := repo.GetByID(ctx, profile.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Parameters["S3"] != "25" {
		t.Error("repository must not alias caller maps")
	}

	stored.Name = "Renamed"
	stored.CreatedAt = time.Time{}
	if err := repo.Update(ctx, stored); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, _ := repo.GetByID(ctx, profile.ID)
	if updated.Name != "Renamed" || updated.CreatedAt.IsZero() {
		t.Errorf("unexpected profile after update %+v", updated)
	}

	if err := repo.Delete(ctx, profile.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, profile.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got: %v", err)
	}
	if err := repo.Delete(ctx, profile.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got: %v", err)
	}
	if err := repo.Update(ctx, profile); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got: %v", err)
	}
}

func TestMemoryProfileRepositoryListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProfileRepository()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, p := range []*model.Profile{
		newProfile("old", base),
		newProfile("newest", base.Add(2*time.Hour)),
		newProfile("b-middle", base.Add(time.Hour)),
		newProfile("a-middle", base.Add(time.Hour)),
	} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	profiles, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"newest", "a-middle", "b-middle", "old"}
	for i, p := range profiles {
		if p.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], p.Name)
		}
	}
}
