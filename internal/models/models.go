package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

type JobStatus string

const (
	JobActive  JobStatus = "active"
	JobFilled  JobStatus = "filled"
	JobExpired JobStatus = "expired"
	JobDraft   JobStatus = "draft"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

// ValidApplicationStatus reports whether s is one of the four known statuses.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	default:
		return false
	}
}

type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"not null" json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type JobSeekerProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `json:"-"`

	FullName  string         `gorm:"not null" json:"full_name"`
	Headline  string         `json:"headline"`
	Skills    pq.StringArray `gorm:"type:text[]" json:"skills"`
	ResumeURL string         `json:"resume_url"`
	Location  string         `json:"location"`
	Lat       float64        `json:"lat"`
	Lng       float64        `json:"lng"`
}

func (p *JobSeekerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type EmployerProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `json:"-"`

	CompanyName string  `gorm:"not null" json:"company_name"`
	Website     string  `json:"website"`
	About       string  `gorm:"type:text" json:"about"`
	Location    string  `json:"location"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

func (p *EmployerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Job struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EmployerID uuid.UUID       `gorm:"type:uuid;index;not null" json:"employer_id"`
	Employer   EmployerProfile `json:"employer,omitempty"`

	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"index" json:"category"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	PayMin      float64        `json:"pay_min"`
	PayMax      float64        `json:"pay_max"`
	Location    string         `json:"location"`
	Lat         float64        `json:"lat"`
	Lng         float64        `json:"lng"`
	Status      JobStatus      `gorm:"default:'active';index" json:"status"`

	// 'omitempty' prevents infinite loops when fetching a Job -> Applications -> Job -> ...
	Applications []Application `json:"applications,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobID uuid.UUID `gorm:"type:uuid;index;not null" json:"job_id"`
	Job   Job       `json:"-"`

	JobSeekerID uuid.UUID        `gorm:"type:uuid;index;not null" json:"job_seeker_id"`
	JobSeeker   JobSeekerProfile `json:"-"`

	CoverLetter string            `gorm:"type:text" json:"cover_letter"`
	Status      ApplicationStatus `gorm:"default:'pending';index" json:"status"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Type      string         `gorm:"not null" json:"type"`
	Title     string         `gorm:"not null" json:"title"`
	Message   string         `gorm:"type:text" json:"message"`
	RelatedID uuid.UUID      `gorm:"type:uuid" json:"related_id"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
	IsRead    bool           `gorm:"default:false;index" json:"is_read"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AuthorID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"author_id"`
	SubjectID uuid.UUID  `gorm:"type:uuid;index;not null" json:"subject_id"`
	JobID     *uuid.UUID `gorm:"type:uuid" json:"job_id,omitempty"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// All lists every model, in FK dependency order. Used by the test helpers
// and kept in sync with the SQL migrations by hand.
func All() []any {
	return []any{
		&User{},
		&JobSeekerProfile{},
		&EmployerProfile{},
		&Job{},
		&Application{},
		&Notification{},
		&Review{},
	}
}
