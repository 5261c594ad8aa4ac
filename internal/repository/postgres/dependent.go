package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vinculopei/vinculo-server/internal/model"
)

var _ model.DependentStore = (*DependentRepository)(nil)

// ErrUnknownEntity is returned for entities outside the dependent table list.
var ErrUnknownEntity = errors.New("unknown dependent entity")

// ErrNotDetachable is returned when the owner column of an entity is required.
var ErrNotDetachable = errors.New("dependent entity cannot be detached")

type dependentTable struct {
	table      string
	column     string
	detachable bool
}

// Identifiers are only ever taken from this table.
var dependentTables = map[model.DependentEntity]dependentTable{
	model.EntityAvailability: {table: "availability", column: "teacher_id"},
	model.EntityClasses:      {table: "classes", column: "teacher_id", detachable: true},
	model.EntityLessons:      {table: "lessons", column: "teacher_id", detachable: true},
	model.EntityReports:      {table: "reports", column: "teacher_id", detachable: true},
	model.EntityEvaluations:  {table: "evaluations", column: "teacher_id", detachable: true},
	model.EntityNotes:        {table: "notes", column: "profile_id"},
}

type DependentRepository struct {
	db *Connection
}

func NewDependentRepository(db *Connection) *DependentRepository {
	return &DependentRepository{
		db: db,
	}
}

func lookupDependent(entity model.DependentEntity) (dependentTable, error) {
	t, ok := dependentTables[entity]
	if !ok {
		return dependentTable{}, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
	return t, nil
}

func (t dependentTable) identifiers() (table, column string) {
	return pgx.Identifier{t.table}.Sanitize(), pgx.Identifier{t.column}.Sanitize()
}

func (r *DependentRepository) Delete(ctx context.Context, entity model.DependentEntity, ownerID uuid.UUID) (int64, error) {
	t, err := lookupDependent(entity)
	if err != nil {
		return 0, err
	}
	table, column := t.identifiers()

	cmd, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, column), ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", entity, err)
	}
	return cmd.RowsAffected(), nil
}

func (r *DependentRepository) Detach(ctx context.Context, entity model.DependentEntity, ownerID uuid.UUID) (int64, error) {
	t, err := lookupDependent(entity)
	if err != nil {
		return 0, err
	}
	if !t.detachable {
		return 0, fmt.Errorf("%w: %s", ErrNotDetachable, entity)
	}
	table, column := t.identifiers()

	cmd, err := r.db.Exec(ctx, fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`, table, column, column), ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to detach %s: %w", entity, err)
	}
	return cmd.RowsAffected(), nil
}
