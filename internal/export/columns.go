package export

import (
	"strconv"
	"time"

	"github.com/recruitbase/recruitbase-api/internal/models"
)

// Fixed column sets per entity. Every declared column appears in every
// exported row; absent values render the sentinel. Enum cells render
// their display labels with the raw code as fallback.

var ApplicationHeaders = []string{
	"ID", "Full Name", "Email", "Phone Number", "LinkedIn", "Status",
	"Stage", "Source", "Country", "City", "Rating", "AI Score", "Applied At",
}

func ApplicationRow(a models.Application) []string {
	return []string{
		strconv.FormatUint(uint64(a.ID), 10),
		orNA(a.FullName),
		orNA(a.Email),
		orNA(a.PhoneNumber),
		orNA(a.LinkedInURL),
		models.Label(models.StatusLabels, a.Status),
		models.Label(models.StageLabels, a.Stage),
		orNA(a.Source),
		orNA(a.Country),
		orNA(a.City),
		strconv.Itoa(a.Rating),
		strconv.FormatFloat(a.AIScore, 'f', 2, 64),
		timeOrNA(a.AppliedAt),
	}
}

var JobHeaders = []string{
	"ID", "Title", "Department ID", "Status", "Country", "City", "Created At",
}

func JobRow(j models.Job) []string {
	dept := Sentinel
	if j.DepartmentID != 0 {
		dept = strconv.FormatUint(uint64(j.DepartmentID), 10)
	}
	return []string{
		strconv.FormatUint(uint64(j.ID), 10),
		orNA(j.Title),
		dept,
		models.Label(models.JobStatusLabels, j.Status),
		orNA(j.Country),
		orNA(j.City),
		timeOrNA(j.CreatedAt),
	}
}

var DepartmentHeaders = []string{
	"ID", "Name", "Description", "Country", "City", "Created At",
}

func DepartmentRow(d models.Department) []string {
	return []string{
		strconv.FormatUint(uint64(d.ID), 10),
		orNA(d.Name),
		orNA(d.Description),
		orNA(d.Country),
		orNA(d.City),
		timeOrNA(d.CreatedAt),
	}
}

func orNA(s string) string {
	if s == "" {
		return Sentinel
	}
	return s
}

func timeOrNA(t time.Time) string {
	if t.IsZero() {
		return Sentinel
	}
	return t.Format(time.RFC3339)
}
