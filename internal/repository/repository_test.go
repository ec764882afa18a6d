package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medbook/appointment-api/internal/config"
	"github.com/medbook/appointment-api/internal/database"
	"github.com/medbook/appointment-api/internal/model"
	"github.com/medbook/appointment-api/internal/repository"
)

// setup connects to the MySQL instance described by the DB_* env vars and
// skips the test when none is configured.
func setup(t *testing.T) (*repository.UserRepo, *repository.AppointmentRepo) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set")
	}
	cfg := config.Config{
		DBUser: os.Getenv("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: os.Getenv("DB_HOST"),
		DBPort: os.Getenv("DB_PORT"),
		DBName: os.Getenv("DB_NAME"),
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewUserRepo(db), repository.NewAppointmentRepo(db)
}

func testUser(role string) (model.User, string) {
	tag := uuid.NewString()[:8]
	return model.User{
		Role:     role,
		UserName: "user-" + tag,
		Email:    fmt.Sprintf("test-%s@example.com", tag),
		Age:      33,
	}, "pw-123456"
}

func TestUserRepoCreateAndLookup(t *testing.T) {
	users, _ := setup(t)
	ctx := context.Background()

	u, pw := testUser(model.RolePatient)
	created, err := users.Create(ctx, u, pw, bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byEmail, err := users.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, u.UserName, byEmail.UserName)

	byID, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	// same email again trips the unique key
	dup := u
	dup.UserName = "other-" + uuid.NewString()[:8]
	_, err = users.Create(ctx, dup, pw, bcrypt.MinCost)
	assert.ErrorIs(t, err, repository.ErrEmailExists)
}

func TestAppointmentRepoFlow(t *testing.T) {
	users, appts := setup(t)
	ctx := context.Background()

	patient, pw := testUser(model.RolePatient)
	patient, err := users.Create(ctx, patient, pw, bcrypt.MinCost)
	require.NoError(t, err)

	doctor := "doc-" + uuid.NewString()[:8]
	created, err := appts.Create(ctx, model.Appointment{
		DoctorUsername:     doctor,
		PatientID:          patient.ID,
		AppointmentDate:    "2026-09-15",
		AppointmentTime:    "10:30",
		ProblemDescription: "integration test",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	history, err := appts.ListByPatient(ctx, patient.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].Consulted)

	open, err := appts.ListUnconsulted(ctx, doctor)
	require.NoError(t, err)
	require.Len(t, open, 1)

	done, err := appts.MarkConsulted(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, done.Consulted)

	// idempotent on repeat
	done, err = appts.MarkConsulted(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, done.Consulted)

	open, err = appts.ListUnconsulted(ctx, doctor)
	require.NoError(t, err)
	assert.Empty(t, open)

	_, err = appts.MarkConsulted(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
