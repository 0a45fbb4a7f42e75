package dtos

type ApplicationCreationRequest struct {
	JobID    uint   `json:"job_id" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`

	// Optional Fields
	PhoneNumber string  `json:"phone_number"`
	LinkedInURL string  `json:"linkedin_url"`
	ResumeLink  string  `json:"resume_link"`
	Status      string  `json:"status"` // Defaults to "pending" if empty
	Stage       string  `json:"stage"`  // Defaults to "applied" if empty
	Source      string  `json:"source"`
	Country     string  `json:"country"`
	City        string  `json:"city"`
	Rating      int     `json:"rating"`
	AIScore     float64 `json:"ai_score"`
}

type ApplicationUpdateRequest struct {
	FullName    *string  `json:"full_name"`
	Email       *string  `json:"email"`
	PhoneNumber *string  `json:"phone_number"`
	LinkedInURL *string  `json:"linkedin_url"`
	ResumeLink  *string  `json:"resume_link"`
	Status      *string  `json:"status"`
	Stage       *string  `json:"stage"`
	Source      *string  `json:"source"`
	Country     *string  `json:"country"`
	City        *string  `json:"city"`
	Rating      *int     `json:"rating"`
	AIScore     *float64 `json:"ai_score"`
}
