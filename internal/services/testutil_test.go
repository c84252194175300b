package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/workbridge/workbridge/internal/models"
	"github.com/workbridge/workbridge/internal/security"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. cache=shared keeps
// the pool's connections pointed at the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

type fakeNotifier struct {
	mu    sync.Mutex
	notes []Note
	fail  bool
}

func (f *fakeNotifier) Notify(note Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("notifier unavailable")
	}
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeNotifier) sent() []Note {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Note(nil), f.notes...)
}

func principalFor(user *models.User) *security.Principal {
	return &security.Principal{ID: user.ID, Role: user.Role}
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedSeeker(t *testing.T, db *gorm.DB, email string) (*models.User, *models.JobSeekerProfile) {
	t.Helper()
	user := seedUser(t, db, email, models.RoleJobSeeker)
	profile := &models.JobSeekerProfile{UserID: user.ID, FullName: "Seeker " + email}
	require.NoError(t, db.Create(profile).Error)
	return user, profile
}

func seedEmployer(t *testing.T, db *gorm.DB, email string) (*models.User, *models.EmployerProfile) {
	t.Helper()
	user := seedUser(t, db, email, models.RoleEmployer)
	profile := &models.EmployerProfile{UserID: user.ID, CompanyName: "Co " + email}
	require.NoError(t, db.Create(profile).Error)
	return user, profile
}

func seedJob(t *testing.T, db *gorm.DB, employer *models.EmployerProfile, status models.JobStatus) *models.Job {
	t.Helper()
	job := &models.Job{
		EmployerID:  employer.ID,
		Title:       "Backend Engineer",
		Description: "Build APIs",
		Category:    "engineering",
		Status:      status,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func seedApplication(t *testing.T, db *gorm.DB, job *models.Job, seeker *models.JobSeekerProfile, status models.ApplicationStatus) *models.Application {
	t.Helper()
	app := &models.Application{JobID: job.ID, JobSeekerID: seeker.ID, Status: status}
	require.NoError(t, db.Create(app).Error)
	return app
}

func reloadApplication(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Application {
	t.Helper()
	var app models.Application
	require.NoError(t, db.First(&app, "id = ?", id).Error)
	return &app
}

func reloadJob(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Job {
	t.Helper()
	var job models.Job
	require.NoError(t, db.First(&job, "id = ?", id).Error)
	return &job
}
