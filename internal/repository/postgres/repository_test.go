package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinculopei/vinculo-server/internal/model"
)

func TestNewRepositories(t *testing.T) {
	db := &Connection{}

	assert.Equal(t, db, NewProfileRepository(db).db)
	assert.Equal(t, db, NewTeacherRepository(db).db)
	assert.Equal(t, db, NewDependentRepository(db).db)
}

func TestDependentTables_CoverCleanupPolicies(t *testing.T) {
	for _, rule := range append(append([]model.CleanupRule{}, model.TeacherCleanupPolicy...), model.ProfileCleanupPolicy...) {
		dt, err := lookupDependent(rule.Entity)
		require.NoError(t, err, rule.Entity)

		if rule.Action == model.CleanupDetach {
			assert.True(t, dt.detachable, "%s must be detachable", rule.Entity)
		}
	}
}

func TestDependentTables_Identifiers(t *testing.T) {
	dt, err := lookupDependent(model.EntityLessons)
	require.NoError(t, err)

	table, column := dt.identifiers()
	assert.Equal(t, `"lessons"`, table)
	assert.Equal(t, `"teacher_id"`, column)
}

func TestDependentRepository_RejectsUnknownEntity(t *testing.T) {
	repo := NewDependentRepository(&Connection{})

	_, err := repo.Delete(context.Background(), model.DependentEntity("users; DROP TABLE profiles"), uuid.New())
	assert.ErrorIs(t, err, ErrUnknownEntity)

	_, err = repo.Detach(context.Background(), model.DependentEntity("secrets"), uuid.New())
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestDependentRepository_DetachRequiredColumn(t *testing.T) {
	repo := NewDependentRepository(&Connection{})

	_, err := repo.Detach(context.Background(), model.EntityNotes, uuid.New())
	assert.ErrorIs(t, err, ErrNotDetachable)

	_, err = repo.Detach(context.Background(), model.EntityAvailability, uuid.New())
	assert.ErrorIs(t, err, ErrNotDetachable)
}

func TestConnection_PingWithoutPool(t *testing.T) {
	c := &Connection{}
	assert.Error(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}
