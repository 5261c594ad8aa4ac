//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vinculopei/vinculo-server/internal/model"
	repo "github.com/vinculopei/vinculo-server/internal/repository/postgres"
	"github.com/vinculopei/vinculo-server/internal/service"
	"github.com/vinculopei/vinculo-server/internal/testutil"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "vinculo_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/vinculo_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()
	conn, err := repo.NewConnection(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func ptr[T any](v T) *T { return &v }

func countOwned(t *testing.T, conn *repo.Connection, table, column string, ownerID uuid.UUID) int64 {
	t.Helper()

	var n int64
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, table, column)
	require.NoError(t, conn.QueryRow(context.Background(), query, ownerID).Scan(&n))
	return n
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	pr := repo.NewProfileRepository(connect(t))

	identityID := uuid.New()
	saved, err := pr.Create(ctx, model.Profile{
		IdentityID: &identityID,
		Name:       "Maria",
		Email:      "Maria.Case@Example.com",
		Role:       model.RoleTutor,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, model.StatusActive, saved.Status)

	t.Run("email lookup ignores case", func(t *testing.T) {
		got, err := pr.GetByEmail(ctx, "maria.case@example.com")
		require.NoError(t, err)
		assert.Equal(t, saved.ID, got.ID)
	})

	t.Run("email is unique ignoring case", func(t *testing.T) {
		_, err := pr.Create(ctx, model.Profile{Name: "Other", Email: "MARIA.CASE@example.com", Role: model.RoleFamily})
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("identity lookup", func(t *testing.T) {
		got, err := pr.GetByIdentityID(ctx, identityID)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, got.ID)
	})

	t.Run("patch leaves nil fields", func(t *testing.T) {
		inactive := model.StatusInactive
		got, err := pr.Update(ctx, saved.ID, model.ProfilePatch{Status: &inactive, SchoolID: ptr(int64(5))})
		require.NoError(t, err)
		assert.Equal(t, "Maria", got.Name)
		assert.Equal(t, model.StatusInactive, got.Status)
		require.NotNil(t, got.SchoolID)
		assert.Equal(t, int64(5), *got.SchoolID)
	})

	t.Run("missing rows", func(t *testing.T) {
		_, err := pr.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
		_, err = pr.Update(ctx, uuid.New(), model.ProfilePatch{Name: ptr("x")})
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.ErrorIs(t, pr.Delete(ctx, uuid.New()), model.ErrNotFound)
	})

	n, err := pr.Count(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
}

func TestLifecycle_DeleteLeavesNoDanglingReferences(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)

	profiles := repo.NewProfileRepository(conn)
	teachers := repo.NewTeacherRepository(conn)
	dependents := repo.NewDependentRepository(conn)

	profile, err := profiles.Create(ctx, model.Profile{
		Name:     "Teacher",
		Email:    "teacher-" + uuid.NewString() + "@x.com",
		Role:     model.RoleProfessional,
		SchoolID: ptr(int64(5)),
	})
	require.NoError(t, err)

	link, err := teachers.Create(ctx, model.TeacherLink{
		ProfileID: profile.ID,
		Name:      profile.Name,
		Email:     profile.Email,
		SchoolID:  5,
		Specialty: model.DefaultSpecialty,
	})
	require.NoError(t, err)

	classID := uuid.New()
	seed := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO availability (id, teacher_id, weekday, starts_at, ends_at) VALUES ($1, $2, 1, '08:00', '10:00')`, []any{uuid.New(), link.ID}},
		{`INSERT INTO classes (id, teacher_id, name) VALUES ($1, $2, '5A')`, []any{classID, link.ID}},
		{`INSERT INTO lessons (id, teacher_id, class_id) VALUES ($1, $2, $3)`, []any{uuid.New(), link.ID, classID}},
		{`INSERT INTO reports (id, teacher_id, title) VALUES ($1, $2, 'PEI')`, []any{uuid.New(), link.ID}},
		{`INSERT INTO evaluations (id, teacher_id, score) VALUES ($1, $2, 9.5)`, []any{uuid.New(), link.ID}},
		{`INSERT INTO notes (id, profile_id, body) VALUES ($1, $2, 'note')`, []any{uuid.New(), profile.ID}},
	}
	for _, s := range seed {
		_, err := conn.Exec(ctx, s.query, s.args...)
		require.NoError(t, err)
	}

	lifecycle := service.NewLifecycle(profiles, teachers, dependents, nil, nil, nil, service.LifecycleOptions{}, testutil.MakeNoopLogger())
	report, err := lifecycle.Delete(ctx, profile.ID)
	require.NoError(t, err)
	assert.False(t, report.Partial(), "%v", report.Err())

	for _, rule := range model.TeacherCleanupPolicy {
		assert.Zero(t, countOwned(t, conn, string(rule.Entity), "teacher_id", link.ID), rule.Entity)
	}
	assert.Zero(t, countOwned(t, conn, "notes", "profile_id", profile.ID))

	var kept int
	require.NoError(t, conn.QueryRow(ctx, `SELECT count(*) FROM classes WHERE id = $1 AND teacher_id IS NULL`, classID).Scan(&kept))
	assert.Equal(t, 1, kept)

	_, err = teachers.GetByProfileID(ctx, profile.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = profiles.GetByID(ctx, profile.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
