package storage

import (
	"context"
	"strings"
	"sync"

	"github.com/unismart/unismart/internal/models"
)

// MemoryRepository implements Repository with in-process maps.
// Used when no DATABASE_DSN is configured and in tests.
type MemoryRepository struct {
	mu           sync.RWMutex
	users        map[string]*models.User // by ID
	byEmail      map[string]string       // lowercased email -> ID
	profiles     map[string]models.Profile
	favorites    map[string][]string
	comparison   map[string][]string
	applications map[string][]*models.Application
	roadmaps     map[string][]*models.RoadmapItem
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:        make(map[string]*models.User),
		byEmail:      make(map[string]string),
		profiles:     make(map[string]models.Profile),
		favorites:    make(map[string][]string),
		comparison:   make(map[string][]string),
		applications: make(map[string][]*models.Application),
		roadmaps:     make(map[string][]*models.RoadmapItem),
	}
}

func (r *MemoryRepository) CreateUser(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return ErrDuplicateEmail
	}

	cp := *u
	r.users[u.ID] = &cp
	r.byEmail[key] = u.ID
	return nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r.users[id]
	return &cp, nil
}

func (r *MemoryRepository) SaveProfile(ctx context.Context, userID string, p models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	r.profiles[userID] = p
	return nil
}

// GetProfile returns a zero profile for users that never saved one
func (r *MemoryRepository) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[userID]; !ok {
		return models.Profile{}, ErrNotFound
	}
	return r.profiles[userID], nil
}

func (r *MemoryRepository) SaveFavorites(ctx context.Context, userID string, ids []string) error {
	return r.saveList(userID, ids, &r.favorites)
}

func (r *MemoryRepository) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	return r.getList(userID, r.favorites)
}

func (r *MemoryRepository) SaveComparison(ctx context.Context, userID string, ids []string) error {
	return r.saveList(userID, ids, &r.comparison)
}

func (r *MemoryRepository) GetComparison(ctx context.Context, userID string) ([]string, error) {
	return r.getList(userID, r.comparison)
}

func (r *MemoryRepository) saveList(userID string, ids []string, dst *map[string][]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	cp := make([]string, len(ids))
	copy(cp, ids)
	(*dst)[userID] = cp
	return nil
}

func (r *MemoryRepository) getList(userID string, src map[string][]string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[userID]; !ok {
		return nil, ErrNotFound
	}
	stored := src[userID]
	out := make([]string, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *MemoryRepository) SaveApplications(ctx context.Context, userID string, apps []*models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	cp := make([]*models.Application, len(apps))
	for i, a := range apps {
		dup := *a
		cp[i] = &dup
	}
	r.applications[userID] = cp
	return nil
}

func (r *MemoryRepository) GetApplications(ctx context.Context, userID string) ([]*models.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[userID]; !ok {
		return nil, ErrNotFound
	}
	stored := r.applications[userID]
	out := make([]*models.Application, len(stored))
	for i, a := range stored {
		dup := *a
		out[i] = &dup
	}
	return out, nil
}

func (r *MemoryRepository) SaveRoadmap(ctx context.Context, userID string, items []*models.RoadmapItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	cp := make([]*models.RoadmapItem, len(items))
	for i, item := range items {
		dup := *item
		cp[i] = &dup
	}
	r.roadmaps[userID] = cp
	return nil
}

func (r *MemoryRepository) GetRoadmap(ctx context.Context, userID string) ([]*models.RoadmapItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[userID]; !ok {
		return nil, ErrNotFound
	}
	stored := r.roadmaps[userID]
	out := make([]*models.RoadmapItem, len(stored))
	for i, item := range stored {
		dup := *item
		out[i] = &dup
	}
	return out, nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error { return nil }

func (r *MemoryRepository) Close() error { return nil }
