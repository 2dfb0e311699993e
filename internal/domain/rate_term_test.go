package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateTermInMonths(t *testing.T) {
	tests := []struct {
		term     RateTerm
		expected *int
	}{
		{TermVariableFloating, nil},
		{Term6Months, intPtr(6)},
		{Term18Months, intPtr(18)},
		{Term1Year, intPtr(12)},
		{Term2Years, intPtr(24)},
		{Term3Years, intPtr(36)},
		{Term4Years, intPtr(48)},
		{Term5Years, intPtr(60)},
	}

	for _, tt := range tests {
		t.Run(string(tt.term), func(t *testing.T) {
			months := tt.term.InMonths()
			if tt.expected == nil {
				assert.Nil(t, months)
				return
			}
			require.NotNil(t, months)
			assert.Equal(t, *tt.expected, *months)
		})
	}
}

func TestIsRateTerm(t *testing.T) {
	assert.True(t, IsRateTerm("6 months"))
	assert.True(t, IsRateTerm("Variable floating"))
	assert.False(t, IsRateTerm("7 months"))
	assert.False(t, IsRateTerm("variable floating"))
	assert.False(t, IsRateTerm(""))
}

func intPtr(v int) *int {
	return &v
}
