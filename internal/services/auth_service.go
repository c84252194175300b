package services

import (
	"context"
	"errors"

	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/dtos"
	"github.com/workbridge/workbridge/internal/models"
	"github.com/workbridge/workbridge/internal/security"
	"gorm.io/gorm"
)

type AuthService struct {
	DB  *gorm.DB
	JWT *security.JWTProvider
}

func NewAuthService(db *gorm.DB, jwt *security.JWTProvider) *AuthService {
	return &AuthService{DB: db, JWT: jwt}
}

// Register creates the user and its role profile in one transaction; a
// failure on either side rolls back the whole thing. Admins are not
// self-registrable.
func (s *AuthService) Register(ctx context.Context, req *dtos.RegisterRequest) (*dtos.AuthResponse, error) {
	role := models.Role(req.Role)
	if role != models.RoleJobSeeker && role != models.RoleEmployer {
		return nil, apperr.InvalidInput("role must be job_seeker or employer")
	}

	var existing int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", req.Email).Count(&existing).Error
	if err != nil {
		return nil, apperr.Internal("failed to check email", err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &models.User{Email: req.Email, PasswordHash: hash, Role: role}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		switch role {
		case models.RoleJobSeeker:
			profile := &models.JobSeekerProfile{
				UserID:    user.ID,
				FullName:  req.FullName,
				Headline:  req.Headline,
				Skills:    req.Skills,
				ResumeURL: req.ResumeURL,
				Location:  req.Location,
				Lat:       req.Lat,
				Lng:       req.Lng,
			}
			return tx.Create(profile).Error
		case models.RoleEmployer:
			profile := &models.EmployerProfile{
				UserID:      user.ID,
				CompanyName: req.CompanyName,
				Website:     req.Website,
				About:       req.About,
				Location:    req.Location,
				Lat:         req.Lat,
				Lng:         req.Lng,
			}
			return tx.Create(profile).Error
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Internal("failed to register", err)
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, req *dtos.LoginRequest) (*dtos.AuthResponse, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "email = ?", req.Email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	if !security.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	return s.issueToken(&user)
}

func (s *AuthService) issueToken(user *models.User) (*dtos.AuthResponse, error) {
	token, expiresAt, err := s.JWT.Generate(user.ID, user.Role)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}
	return &dtos.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID.String(),
		Role:      string(user.Role),
	}, nil
}
