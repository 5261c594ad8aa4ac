package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vinculopei/vinculo-server/internal/model"
)

var _ model.TeacherStore = (*TeacherRepository)(nil)

type TeacherRepository struct {
	db *Connection
}

func NewTeacherRepository(db *Connection) *TeacherRepository {
	return &TeacherRepository{
		db: db,
	}
}

func (r *TeacherRepository) GetByProfileID(ctx context.Context, profileID uuid.UUID) (model.TeacherLink, error) {
	var t model.TeacherLink
	query := `SELECT id, profile_id, name, email, school_id, specialty, platform_id, created_at
			  FROM teachers WHERE profile_id = $1`

	err := r.db.QueryRow(ctx, query, profileID).Scan(
		&t.ID, &t.ProfileID, &t.Name, &t.Email, &t.SchoolID, &t.Specialty, &t.PlatformID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TeacherLink{}, model.ErrNotFound
		}
		return model.TeacherLink{}, fmt.Errorf("failed to get teacher by profile id: %w", err)
	}

	return t, nil
}

func (r *TeacherRepository) Create(ctx context.Context, link model.TeacherLink) (model.TeacherLink, error) {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}

	query := `INSERT INTO teachers (id, profile_id, name, email, school_id, specialty, platform_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, profile_id, name, email, school_id, specialty, platform_id, created_at`

	var saved model.TeacherLink
	err := r.db.QueryRow(ctx, query,
		link.ID, link.ProfileID, link.Name, link.Email, link.SchoolID, link.Specialty, link.PlatformID,
	).Scan(
		&saved.ID, &saved.ProfileID, &saved.Name, &saved.Email, &saved.SchoolID,
		&saved.Specialty, &saved.PlatformID, &saved.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.TeacherLink{}, fmt.Errorf("failed to create teacher: %w", model.ErrConflict)
		}
		return model.TeacherLink{}, fmt.Errorf("failed to create teacher: %w", err)
	}

	return saved, nil
}

func (r *TeacherRepository) UpdateSchool(ctx context.Context, profileID uuid.UUID, schoolID int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE teachers SET school_id = $2 WHERE profile_id = $1`, profileID, schoolID)
	if err != nil {
		return fmt.Errorf("failed to update teacher school: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *TeacherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete teacher: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
