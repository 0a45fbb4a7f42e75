package dtos

// ListQuery carries the client-supplied list parameters after the
// handler has pulled them off the URL. Filter values are raw strings;
// the query package decides which ones it recognizes.
type ListQuery struct {
	Filters  map[string]string `json:"filters"`
	Search   string            `json:"search"`
	DateFrom string            `json:"date_from"`
	DateTo   string            `json:"date_to"`
	SortBy   string            `json:"sort_by"`
	SortDir  string            `json:"sort_dir"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// PageResult is one page of a list endpoint.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}
