package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vinculopei/vinculo-server/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

const profileColumns = `id, identity_id, name, email, role, status, avatar, school_id, platform_id, created_at, updated_at`

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

func scanProfile(row scanner) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.ID, &p.IdentityID, &p.Name, &p.Email, &p.Role, &p.Status,
		&p.Avatar, &p.SchoolID, &p.PlatformID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *ProfileRepository) getOne(ctx context.Context, what, query string, args ...any) (model.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile by %s: %w", what, err)
	}
	return p, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.getOne(ctx, "id", query, id)
}

// GetByEmail matches email case-insensitively.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1)`
	return r.getOne(ctx, "email", query, email)
}

func (r *ProfileRepository) GetByIdentityID(ctx context.Context, identityID uuid.UUID) (model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE identity_id = $1`
	return r.getOne(ctx, "identity id", query, identityID)
}

func (r *ProfileRepository) List(ctx context.Context) ([]model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY name, created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}

func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM profiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return n, nil
}

// Create inserts a profile. A zero ID is replaced with a new one.
func (r *ProfileRepository) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.Status == "" {
		profile.Status = model.StatusActive
	}

	query := `INSERT INTO profiles (id, identity_id, name, email, role, status, avatar, school_id, platform_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + profileColumns

	saved, err := scanProfile(r.db.QueryRow(ctx, query,
		profile.ID, profile.IdentityID, profile.Name, profile.Email, profile.Role, profile.Status,
		profile.Avatar, profile.SchoolID, profile.PlatformID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Profile{}, fmt.Errorf("failed to create profile: %w", model.ErrConflict)
		}
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return saved, nil
}

// Update applies the non-nil fields of patch.
func (r *ProfileRepository) Update(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) (model.Profile, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	query := `UPDATE profiles SET
				identity_id = COALESCE($2, identity_id),
				name        = COALESCE($3, name),
				role        = COALESCE($4, role),
				status      = COALESCE($5, status),
				avatar      = COALESCE($6, avatar),
				school_id   = COALESCE($7, school_id),
				platform_id = COALESCE($8, platform_id),
				updated_at  = now()
			  WHERE id = $1
			  RETURNING ` + profileColumns

	saved, err := scanProfile(r.db.QueryRow(ctx, query,
		id, patch.IdentityID, patch.Name, patch.Role, patch.Status, patch.Avatar, patch.SchoolID, patch.PlatformID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Profile{}, fmt.Errorf("failed to update profile: %w", model.ErrConflict)
		}
		return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return saved, nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
