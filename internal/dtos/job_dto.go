package dtos

type JobCreationRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`

	// Optional Fields
	DepartmentID uint   `json:"department_id"`
	Status       string `json:"status"` // Defaults to "open" if empty
	Country      string `json:"country"`
	City         string `json:"city"`
}

type JobUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DepartmentID *uint   `json:"department_id"`
	Status       *string `json:"status"`
	Country      *string `json:"country"`
	City         *string `json:"city"`
}
