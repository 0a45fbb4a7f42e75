package models

import (
	"time"

	"gorm.io/gorm"
)

// Company is the tenant. Every other record carries a CompanyID and no
// query may ever run without one.
type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"uniqueIndex;not null" json:"name"`
	Website string `json:"website"`
	Country string `json:"country"`
	City    string `json:"city"`
}

type Department struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint `gorm:"index;not null" json:"company_id"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Country     string `json:"country"`
	City        string `json:"city"`
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID    uint `gorm:"index;not null" json:"company_id"`
	DepartmentID uint `gorm:"index" json:"department_id"`
	// Association: GORM needs Preload() to fill this
	Department Department `json:"department,omitempty"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"default:'open'" json:"status"`
	Country     string `json:"country"`
	City        string `json:"city"`
}

type Application struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint `gorm:"index;not null" json:"company_id"`
	JobID     uint `gorm:"index" json:"job_id"`
	Job       Job  `json:"job,omitempty"`

	FullName    string `gorm:"not null" json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	LinkedInURL string `json:"linkedin_url"`
	ResumeLink  string `json:"resume_link"`

	Status string `gorm:"default:'pending'" json:"status"`
	Stage  string `gorm:"default:'applied'" json:"stage"`
	Source string `json:"source"`

	Country string `json:"country"`
	City    string `json:"city"`

	Rating  int     `json:"rating"`
	AIScore float64 `json:"ai_score"`

	AppliedAt time.Time `json:"applied_at"`
}

// Application status codes.
const (
	StatusPending     = "pending"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusHired       = "hired"
)

// Pipeline stages.
const (
	StageApplied   = "applied"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffer     = "offer"
)

// StatusLabels maps raw application status codes to display labels.
// Unknown codes are rendered as-is, they are never dropped.
var StatusLabels = map[string]string{
	StatusPending:     "Pending",
	StatusShortlisted: "Shortlisted",
	StatusRejected:    "Rejected",
	StatusHired:       "Hired",
}

// StageLabels maps pipeline stage codes to display labels.
var StageLabels = map[string]string{
	StageApplied:   "Applied",
	StageScreening: "Screening",
	StageInterview: "Interview",
	StageOffer:     "Offer",
}

// JobStatusLabels maps job posting status codes to display labels.
var JobStatusLabels = map[string]string{
	"open":   "Open",
	"closed": "Closed",
	"draft":  "Draft",
}

// Label resolves code through labels, falling back to the raw code.
func Label(labels map[string]string, code string) string {
	if l, ok := labels[code]; ok {
		return l
	}
	return code
}
