package services

import "errors"

// Sentinel errors for the service layer. Handlers match these with
// errors.Is to pick a status code. A tenant mismatch is never folded
// into not-found: leaking whether a record exists across tenants is
// exactly the bug that distinction prevents us from papering over.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("access forbidden")
)

// Resource names used in cache keys.
const (
	ResourceApplications = "applications"
	ResourceJobs         = "jobs"
	ResourceDepartments  = "departments"
)
