package dtos

type DepartmentCreationRequest struct {
	Name string `json:"name" binding:"required"`

	// Optional Fields
	Description string `json:"description"`
	Country     string `json:"country"`
	City        string `json:"city"`
}

type DepartmentUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
}
