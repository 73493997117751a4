package storage

import (
	"context"
	"errors"

	"github.com/unismart/unismart/internal/models"
)

var (
	// ErrNotFound is returned when a user or a piece of user data does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when registering an email that is already taken
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository defines the interface for user data persistence
type Repository interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Profile
	SaveProfile(ctx context.Context, userID string, p models.Profile) error
	GetProfile(ctx context.Context, userID string) (models.Profile, error)

	// Collections
	SaveFavorites(ctx context.Context, userID string, ids []string) error
	GetFavorites(ctx context.Context, userID string) ([]string, error)
	SaveComparison(ctx context.Context, userID string, ids []string) error
	GetComparison(ctx context.Context, userID string) ([]string, error)
	SaveApplications(ctx context.Context, userID string, apps []*models.Application) error
	GetApplications(ctx context.Context, userID string) ([]*models.Application, error)

	// Roadmap
	SaveRoadmap(ctx context.Context, userID string, items []*models.RoadmapItem) error
	GetRoadmap(ctx context.Context, userID string) ([]*models.RoadmapItem, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
