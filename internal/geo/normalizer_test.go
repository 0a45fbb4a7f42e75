package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{name: "plain name", input: "Morocco", expected: "MA", ok: true},
		{name: "lowercase", input: "spain", expected: "ES", ok: true},
		{name: "common abbreviation", input: "USA", expected: "US", ok: true},
		{name: "uk alias", input: "UK", expected: "GB", ok: true},
		{name: "surrounding whitespace", input: "  France  ", expected: "FR", ok: true},
		{name: "accented spelling", input: "Perú", expected: "PE", ok: true},
		{name: "empty", input: "", expected: "", ok: false},
		{name: "whitespace only", input: "   ", expected: "", ok: false},
		{name: "gibberish", input: "Atlantis", expected: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := Resolve(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, code)
		})
	}
}
