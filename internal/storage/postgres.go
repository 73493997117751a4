package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unismart/unismart/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 5
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// CreateUser inserts a new account. Emails are stored lowercased and
// guarded by a unique index.
func (r *PostgresRepository) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Name,
		strings.ToLower(u.Email),
		u.PasswordHash,
		u.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getUser(ctx, "id", id)
}

// GetUserByEmail retrieves a user by email, case-insensitively
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "email", strings.ToLower(email))
}

func (r *PostgresRepository) getUser(ctx context.Context, field, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE %s = $1
	`, field)

	var u models.User
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// SaveProfile upserts the user's matching profile
func (r *PostgresRepository) SaveProfile(ctx context.Context, userID string, p models.Profile) error {
	interestsJSON, err := json.Marshal(p.Interests)
	if err != nil {
		return fmt.Errorf("failed to marshal interests: %w", err)
	}

	subjectsJSON, err := json.Marshal(p.ProfileSubjects)
	if err != nil {
		return fmt.Errorf("failed to marshal profile subjects: %w", err)
	}

	query := `
		INSERT INTO profiles (user_id, ent_score, ielts_score, budget, preferred_city, interests, profile_subjects)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE
		SET ent_score = EXCLUDED.ent_score,
		    ielts_score = EXCLUDED.ielts_score,
		    budget = EXCLUDED.budget,
		    preferred_city = EXCLUDED.preferred_city,
		    interests = EXCLUDED.interests,
		    profile_subjects = EXCLUDED.profile_subjects
	`

	_, err = r.pool.Exec(ctx, query,
		userID,
		p.ENTScore,
		p.IELTSScore,
		p.Budget,
		p.PreferredCity,
		interestsJSON,
		subjectsJSON,
	)

	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// GetProfile returns the user's profile, or a zero profile when none was saved
func (r *PostgresRepository) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	query := `
		SELECT ent_score, ielts_score, budget, preferred_city, interests, profile_subjects
		FROM profiles
		WHERE user_id = $1
	`

	var p models.Profile
	var interestsJSON, subjectsJSON []byte

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.ENTScore,
		&p.IELTSScore,
		&p.Budget,
		&p.PreferredCity,
		&interestsJSON,
		&subjectsJSON,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// A registered user without a saved profile still gets an empty one
			if _, uerr := r.GetUserByID(ctx, userID); uerr != nil {
				return models.Profile{}, uerr
			}
			return models.Profile{}, nil
		}
		return models.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	if interestsJSON != nil {
		if err := json.Unmarshal(interestsJSON, &p.Interests); err != nil {
			return models.Profile{}, fmt.Errorf("failed to unmarshal interests: %w", err)
		}
	}
	if subjectsJSON != nil {
		if err := json.Unmarshal(subjectsJSON, &p.ProfileSubjects); err != nil {
			return models.Profile{}, fmt.Errorf("failed to unmarshal profile subjects: %w", err)
		}
	}

	return p, nil
}

// SaveFavorites replaces the user's favorites list
func (r *PostgresRepository) SaveFavorites(ctx context.Context, userID string, ids []string) error {
	return r.saveCollection(ctx, userID, "favorites", ids)
}

// GetFavorites returns the user's favorites list
func (r *PostgresRepository) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := r.getCollection(ctx, userID, "favorites", &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SaveComparison replaces the user's comparison list
func (r *PostgresRepository) SaveComparison(ctx context.Context, userID string, ids []string) error {
	return r.saveCollection(ctx, userID, "comparison", ids)
}

// GetComparison returns the user's comparison list
func (r *PostgresRepository) GetComparison(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := r.getCollection(ctx, userID, "comparison", &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SaveApplications replaces the user's applications list
func (r *PostgresRepository) SaveApplications(ctx context.Context, userID string, apps []*models.Application) error {
	return r.saveCollection(ctx, userID, "applications", apps)
}

// GetApplications returns the user's applications list
func (r *PostgresRepository) GetApplications(ctx context.Context, userID string) ([]*models.Application, error) {
	var apps []*models.Application
	if err := r.getCollection(ctx, userID, "applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Collection columns live in a single row per user, upserted as JSONB.
// The column name is always one of the fixed identifiers above, never
// user input.
func (r *PostgresRepository) saveCollection(ctx context.Context, userID, column string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", column, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO user_collections (user_id, %s)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET %s = EXCLUDED.%s
	`, column, column, column)

	if _, err := r.pool.Exec(ctx, query, userID, payload); err != nil {
		return fmt.Errorf("failed to save %s: %w", column, err)
	}

	return nil
}

func (r *PostgresRepository) getCollection(ctx context.Context, userID, column string, dst interface{}) error {
	query := fmt.Sprintf(`SELECT %s FROM user_collections WHERE user_id = $1`, column)

	var payload []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, uerr := r.GetUserByID(ctx, userID); uerr != nil {
				return uerr
			}
			return nil
		}
		return fmt.Errorf("failed to get %s: %w", column, err)
	}

	if payload == nil {
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", column, err)
	}

	return nil
}

// SaveRoadmap replaces the user's admission roadmap
func (r *PostgresRepository) SaveRoadmap(ctx context.Context, userID string, items []*models.RoadmapItem) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal roadmap: %w", err)
	}

	query := `
		INSERT INTO roadmaps (user_id, items, generated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET items = EXCLUDED.items, generated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, userID, itemsJSON); err != nil {
		return fmt.Errorf("failed to save roadmap: %w", err)
	}

	return nil
}

// GetRoadmap returns the user's stored roadmap, nil when none was generated
func (r *PostgresRepository) GetRoadmap(ctx context.Context, userID string) ([]*models.RoadmapItem, error) {
	query := `SELECT items FROM roadmaps WHERE user_id = $1`

	var itemsJSON []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&itemsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, uerr := r.GetUserByID(ctx, userID); uerr != nil {
				return nil, uerr
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get roadmap: %w", err)
	}

	var items []*models.RoadmapItem
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roadmap: %w", err)
	}

	return items, nil
}
