// internal/repository/memory_repository.go
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"sik-configurator/internal/model"
)

// memoryProfileRepository keeps profiles in process memory when no
// database is configured. Profiles are copied in and out.
type memoryProfileRepository struct {
	mutex    sync.RWMutex
	profiles map[uuid.UUID]*model.Profile
}

// NewMemoryProfileRepository creates an empty in-memory repository
func NewMemoryProfileRepository() ProfileRepository {
	return &memoryProfileRepository{
		profiles: make(map[uuid.UUID]*model.Profile),
	}
}

func (r *memoryProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.profiles[profile.ID]; exists {
		return fmt.Errorf("failed to create profile: duplicate id %s", profile.ID)
	}
	r.profiles[profile.ID] = profile.Clone()
	return nil
}

func (r *memoryProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return profile.Clone(), nil
}

func (r *memoryProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, ok := r.profiles[profile.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, profile.ID)
	}
	updated := profile.Clone()
	updated.CreatedAt = existing.CreatedAt
	r.profiles[profile.ID] = updated
	return nil
}

func (r *memoryProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	delete(r.profiles, id)
	return nil
}

func (r *memoryProfileRepository) List(ctx context.Context) ([]*model.Profile, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	profiles := make([]*model.Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		profiles = append(profiles, profile.Clone())
	}
	sort.Slice(profiles, func(i, j int) bool {
		if !profiles[i].UpdatedAt.Equal(profiles[j].UpdatedAt) {
			return profiles[i].UpdatedAt.After(profiles[j].UpdatedAt)
		}
		return profiles[i].Name < profiles[j].Name
	})
	return profiles, nil
}
