package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/dtos"
	"github.com/workbridge/workbridge/internal/models"
	"github.com/workbridge/workbridge/internal/security"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

func (s *JobService) Create(ctx context.Context, actor *security.Principal, req *dtos.JobCreationRequest) (*models.Job, error) {
	employer, err := s.employerProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	status := models.JobActive
	if req.Status != "" {
		status = models.JobStatus(req.Status)
	}
	job := &models.Job{
		EmployerID:  employer.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		PayMin:      req.PayMin,
		PayMax:      req.PayMax,
		Location:    req.Location,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Status:      status,
	}
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return nil, apperr.Internal("failed to create job", err)
	}
	return job, nil
}

// Get returns one job. Drafts are only visible to the posting employer or an
// admin; everyone else gets a not-found, same as a job that never existed.
func (s *JobService) Get(ctx context.Context, id uuid.UUID, actor *security.Principal) (*dtos.JobResponse, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).Preload("Employer").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, apperr.Internal("failed to load job", err)
	}
	if job.Status == models.JobDraft && !canViewDraft(&job, actor) {
		return nil, apperr.NotFound("job not found")
	}
	return &dtos.JobResponse{Job: job, CompanyName: job.Employer.CompanyName}, nil
}

func canViewDraft(job *models.Job, actor *security.Principal) bool {
	if actor == nil {
		return false
	}
	return actor.Role == models.RoleAdmin || job.Employer.UserID == actor.ID
}

func (s *JobService) Update(ctx context.Context, id uuid.UUID, actor *security.Principal, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.ownedJob(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.PayMin != nil {
		updates["pay_min"] = *req.PayMin
	}
	if req.PayMax != nil {
		updates["pay_max"] = *req.PayMax
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Lat != nil {
		updates["lat"] = *req.Lat
	}
	if req.Lng != nil {
		updates["lng"] = *req.Lng
	}
	if req.Status != nil {
		updates["status"] = models.JobStatus(*req.Status)
	}
	if req.Tags != nil {
		job.Tags = *req.Tags
		if err := s.DB.WithContext(ctx).Model(job).Update("tags", job.Tags).Error; err != nil {
			return nil, apperr.Internal("failed to update job", err)
		}
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(job).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("failed to update job", err)
		}
	}
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, id uuid.UUID, actor *security.Principal) error {
	job, err := s.ownedJob(ctx, id, actor)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(job).Error; err != nil {
		return apperr.Internal("failed to delete job", err)
	}
	return nil
}

// ListByEmployer returns the actor's own postings, drafts included.
func (s *JobService) ListByEmployer(ctx context.Context, actor *security.Principal) ([]models.Job, error) {
	employer, err := s.employerProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	var jobs []models.Job
	err = s.DB.WithContext(ctx).
		Where("employer_id = ?", employer.ID).
		Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		return nil, apperr.Internal("failed to list jobs", err)
	}
	return jobs, nil
}

// List applies the fixed filter set as parameterized predicates and
// paginates. Drafts never show up in the public listing. When a radius
// filter is present the Haversine distance is computed per candidate row
// and pagination happens after the distance cut.
func (s *JobService) List(ctx context.Context, filter *dtos.JobFilter) ([]models.Job, dtos.PageMeta, error) {
	page, limit := dtos.NormalizePage(filter.Page, filter.Limit)

	// Drafts are excluded unconditionally; a status filter narrows within
	// the non-draft set, so ?status=draft yields nothing.
	query := s.DB.WithContext(ctx).Model(&models.Job{}).
		Where("status <> ?", models.JobDraft)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.PayMin > 0 {
		query = query.Where("pay_max >= ?", filter.PayMin)
	}
	if filter.PayMax > 0 {
		query = query.Where("pay_min <= ?", filter.PayMax)
	}
	if keyword := normalizeKeyword(filter.Keyword); keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where(
			"lower(title) LIKE ? OR lower(description) LIKE ? OR lower(category) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if filter.RadiusKm > 0 {
		return s.listWithinRadius(query, filter, page, limit)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, dtos.PageMeta{}, apperr.Internal("failed to count jobs", err)
	}
	var jobs []models.Job
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&jobs).Error
	if err != nil {
		return nil, dtos.PageMeta{}, apperr.Internal("failed to list jobs", err)
	}
	return jobs, dtos.NewPageMeta(page, limit, total), nil
}

func (s *JobService) listWithinRadius(query *gorm.DB, filter *dtos.JobFilter, page, limit int) ([]models.Job, dtos.PageMeta, error) {
	var candidates []models.Job
	if err := query.Order("created_at DESC").Find(&candidates).Error; err != nil {
		return nil, dtos.PageMeta{}, apperr.Internal("failed to list jobs", err)
	}
	within := candidates[:0]
	for _, job := range candidates {
		if haversineKm(filter.Lat, filter.Lng, job.Lat, job.Lng) <= filter.RadiusKm {
			within = append(within, job)
		}
	}
	total := int64(len(within))
	start := (page - 1) * limit
	if start > len(within) {
		start = len(within)
	}
	end := start + limit
	if end > len(within) {
		end = len(within)
	}
	return within[start:end], dtos.NewPageMeta(page, limit, total), nil
}

// haversineKm is the great-circle distance between two points.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// normalizeKeyword lowercases and strips diacritics so "Développeur"
// matches "developpeur".
func normalizeKeyword(keyword string) string {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, keyword)
	if err != nil {
		return keyword
	}
	return normalized
}

func (s *JobService) employerProfile(ctx context.Context, userID uuid.UUID) (*models.EmployerProfile, error) {
	var employer models.EmployerProfile
	if err := s.DB.WithContext(ctx).First(&employer, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidInput("employer profile is required")
		}
		return nil, apperr.Internal("failed to load employer profile", err)
	}
	return &employer, nil
}

func (s *JobService) ownedJob(ctx context.Context, id uuid.UUID, actor *security.Principal) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).Preload("Employer").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, apperr.Internal("failed to load job", err)
	}
	if actor.Role != models.RoleAdmin && job.Employer.UserID != actor.ID {
		return nil, apperr.Forbidden("not your job posting")
	}
	return &job, nil
}
