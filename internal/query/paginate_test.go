package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recruitbase/recruitbase-api/internal/dtos"
)

func TestHashStable(t *testing.T) {
	q := dtos.ListQuery{
		Filters:  map[string]string{"status": "pending", "city": "Rabat"},
		Search:   "jane",
		SortBy:   "rating",
		SortDir:  "asc",
		Page:     2,
		PageSize: 25,
	}
	same := dtos.ListQuery{
		Filters:  map[string]string{"city": "Rabat", "status": "pending"},
		Search:   "jane",
		SortBy:   "rating",
		SortDir:  "asc",
		Page:     2,
		PageSize: 25,
	}
	assert.Equal(t, Hash(q), Hash(same), "map key order must not change the hash")

	different := q
	different.Page = 3
	assert.NotEqual(t, Hash(q), Hash(different))
}
