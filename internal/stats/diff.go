package stats

import (
	"math"

	"github.com/recruitbase/recruitbase-api/internal/dtos"
)

// ComputeDiff compares a current period count against the previous
// one. With a zero previous period the percentage is 0 when current is
// also zero and 100 otherwise. A tie reads as "up".
func ComputeDiff(current, previous int64) dtos.DiffResult {
	d := dtos.DiffResult{
		Current:  current,
		Previous: previous,
		Delta:    current - previous,
	}

	switch {
	case previous == 0 && current == 0:
		d.Percentage = 0
	case previous == 0:
		d.Percentage = 100
	default:
		d.Percentage = int(math.Round(float64(current-previous) / float64(previous) * 100))
	}

	if current >= previous {
		d.Direction = "up"
	} else {
		d.Direction = "down"
	}
	return d
}
