package dtos

// DiffResult compares the current period against the previous one.
type DiffResult struct {
	Current    int64  `json:"current"`
	Previous   int64  `json:"previous"`
	Delta      int64  `json:"delta"`
	Percentage int    `json:"percentage"`
	Direction  string `json:"direction"` // "up" or "down"
}

// TotalStats is an overall count plus its month-over-month movement.
type TotalStats struct {
	Total int64      `json:"total"`
	Diff  DiffResult `json:"diff"`
}

// RollupEntry is one bucket of a categorical rollup.
type RollupEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// GeoEntry is one country bucket, keyed by ISO-3166 alpha-2 code.
type GeoEntry struct {
	ID    string `json:"id"`
	Value int64  `json:"value"`
}

// GeoRollup lists resolved countries. Total counts every record in the
// period, including ones whose country could not be resolved.
type GeoRollup struct {
	Countries []GeoEntry `json:"countries"`
	Total     int64      `json:"total"`
}

// DashboardStats is the aggregate payload behind the dashboard.
// Each section is computed independently; a section that failed is nil
// and its error message appears under Errors keyed by section name.
type DashboardStats struct {
	Applications *TotalStats   `json:"applications,omitempty"`
	Jobs         *TotalStats   `json:"jobs,omitempty"`
	Departments  *TotalStats   `json:"departments,omitempty"`
	Monthly      []int64       `json:"monthly,omitempty"`
	ByStatus     []RollupEntry `json:"by_status,omitempty"`
	ByStage      []RollupEntry `json:"by_stage,omitempty"`
	ByJob        []RollupEntry `json:"by_job,omitempty"`
	ByDepartment []RollupEntry `json:"by_department,omitempty"`
	Geo          *GeoRollup    `json:"geo,omitempty"`

	Errors map[string]string `json:"errors,omitempty"`
}
