package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recruitbase/recruitbase-api/internal/dtos"
)

func TestComputeDiff(t *testing.T) {
	tests := []struct {
		name              string
		current, previous int64
		want              dtos.DiffResult
	}{
		{
			name: "both zero", current: 0, previous: 0,
			want: dtos.DiffResult{Current: 0, Previous: 0, Delta: 0, Percentage: 0, Direction: "up"},
		},
		{
			name: "growth from zero", current: 5, previous: 0,
			want: dtos.DiffResult{Current: 5, Previous: 0, Delta: 5, Percentage: 100, Direction: "up"},
		},
		{
			name: "halved", current: 3, previous: 6,
			want: dtos.DiffResult{Current: 3, Previous: 6, Delta: -3, Percentage: -50, Direction: "down"},
		},
		{
			name: "tie counts as up", current: 4, previous: 4,
			want: dtos.DiffResult{Current: 4, Previous: 4, Delta: 0, Percentage: 0, Direction: "up"},
		},
		{
			name: "rounded percentage", current: 2, previous: 3,
			want: dtos.DiffResult{Current: 2, Previous: 3, Delta: -1, Percentage: -33, Direction: "down"},
		},
		{
			name: "tripled", current: 9, previous: 3,
			want: dtos.DiffResult{Current: 9, Previous: 3, Delta: 6, Percentage: 200, Direction: "up"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDiff(tt.current, tt.previous))
		})
	}
}
