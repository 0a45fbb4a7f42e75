package query

import "strings"

// Sort defaults. Unknown keys and directions fall back here instead of
// erroring; list views should never 4xx over a bad sort param.
const (
	DefaultSortColumn = "created_at"
	DirAsc            = "ASC"
	DirDesc           = "DESC"
)

// SortSpec is a resolved, allow-listed ordering.
type SortSpec struct {
	Column    string
	Direction string
}

// OrderClause renders the spec for gorm's Order. Both parts come from
// the allow-list, never from client input.
func (s SortSpec) OrderClause() string {
	return s.Column + " " + s.Direction
}

// BuildSort resolves a requested sort key and direction against the
// schema's allow-list. Unknown key → created_at; anything but "asc" →
// descending. Ties are broken by the store's insertion order; callers
// must not assume a secondary tie-break.
func BuildSort(sortBy, sortDir string, schema Schema) SortSpec {
	spec := SortSpec{Column: DefaultSortColumn, Direction: DirDesc}
	if col, ok := schema.Sort[strings.TrimSpace(sortBy)]; ok {
		spec.Column = col
	}
	if strings.EqualFold(strings.TrimSpace(sortDir), "asc") {
		spec.Direction = DirAsc
	}
	return spec
}
