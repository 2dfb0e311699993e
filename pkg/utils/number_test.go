package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalFloat(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected *float64
	}{
		{"plain number", "12.9", floatPtr(12.9)},
		{"padded number", "  5.25 ", floatPtr(5.25)},
		{"empty cell", "", nil},
		{"whitespace only", "   ", nil},
		{"non-numeric text", "n/a", nil},
		{"zero is treated as missing", "0", nil},
		{"negative rates survive", "-0.5", floatPtr(-0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOptionalFloat(tt.cell)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestParseFiniteFloat(t *testing.T) {
	value, ok := ParseFiniteFloat("4.50")
	assert.True(t, ok)
	assert.Equal(t, 4.5, value)

	_, ok = ParseFiniteFloat("from 4.50")
	assert.False(t, ok)

	_, ok = ParseFiniteFloat("")
	assert.False(t, ok)

	// Zero is a legal value here, unlike the optional variant.
	value, ok = ParseFiniteFloat("0")
	assert.True(t, ok)
	assert.Zero(t, value)
}

func TestRound6(t *testing.T) {
	assert.Equal(t, 10.066667, Round6(30.2/3))
	assert.Equal(t, 4.95, Round6(4.95))
	assert.Zero(t, Round6(0))
}

func floatPtr(v float64) *float64 {
	return &v
}
