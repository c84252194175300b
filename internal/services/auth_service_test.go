package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/dtos"
	"github.com/workbridge/workbridge/internal/models"
	"github.com/workbridge/workbridge/internal/security"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, security.NewJWTProvider("test-secret", time.Hour))

	resp, err := svc.Register(context.Background(), &dtos.RegisterRequest{
		Email:    "dev@seek.test",
		Password: "hunter2hunter2",
		Role:     "job_seeker",
		FullName: "Dana Developer",
		Skills:   []string{"go", "sql"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "job_seeker", resp.Role)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "dev@seek.test").Error)
	var profile models.JobSeekerProfile
	require.NoError(t, db.First(&profile, "user_id = ?", user.ID).Error)
	assert.Equal(t, "Dana Developer", profile.FullName)

	// The stored hash verifies and is not the plaintext.
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
	assert.True(t, security.CheckPassword(user.PasswordHash, "hunter2hunter2"))
}

func TestRegisterEmployer(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, security.NewJWTProvider("test-secret", time.Hour))

	resp, err := svc.Register(context.Background(), &dtos.RegisterRequest{
		Email:       "boss@co.test",
		Password:    "hunter2hunter2",
		Role:        "employer",
		CompanyName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "employer", resp.Role)

	var profile models.EmployerProfile
	require.NoError(t, db.Joins("User").First(&profile, "company_name = ?", "Acme").Error)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, security.NewJWTProvider("test-secret", time.Hour))

	req := &dtos.RegisterRequest{Email: "dup@wb.test", Password: "hunter2hunter2", Role: "job_seeker", FullName: "A"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, security.NewJWTProvider("test-secret", time.Hour))

	_, err := svc.Register(context.Background(), &dtos.RegisterRequest{Email: "a@wb.test", Password: "hunter2hunter2", Role: "admin"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidInput))
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, security.NewJWTProvider("test-secret", time.Hour))

	_, err := svc.Register(context.Background(), &dtos.RegisterRequest{Email: "dev@seek.test", Password: "hunter2hunter2", Role: "job_seeker", FullName: "A"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dtos.LoginRequest{Email: "dev@seek.test", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), &dtos.LoginRequest{Email: "dev@seek.test", Password: "wrong-password"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	_, err = svc.Login(context.Background(), &dtos.LoginRequest{Email: "nobody@seek.test", Password: "hunter2hunter2"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}
