package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompareSnapshotRecency(t *testing.T) {
	tests := []struct {
		name                      string
		leftDate, leftScrapedAt   string
		rightDate, rightScrapedAt string
		expected                  int
	}{
		{
			name:     "later date wins regardless of timestamp",
			leftDate: "2026-08-31", leftScrapedAt: "2026-08-31T01:00:00Z",
			rightDate: "2026-08-30", rightScrapedAt: "2026-08-30T23:00:00Z",
			expected: 1,
		},
		{
			name:     "same date falls back to scrape timestamp",
			leftDate: "2026-08-31", leftScrapedAt: "2026-08-31T09:00:00Z",
			rightDate: "2026-08-31", rightScrapedAt: "2026-08-31T10:00:00Z",
			expected: -1,
		},
		{
			name:     "identical pairs are equal",
			leftDate: "2026-08-31", leftScrapedAt: "2026-08-31T09:00:00Z",
			rightDate: "2026-08-31", rightScrapedAt: "2026-08-31T09:00:00Z",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareSnapshotRecency(tt.leftDate, tt.leftScrapedAt, tt.rightDate, tt.rightScrapedAt)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSnapshotDateOf(t *testing.T) {
	// Morning NZ time is still the previous calendar day in UTC; the snapshot
	// key is always the UTC date.
	auckland := time.FixedZone("NZST", 12*60*60)
	scrapedAt := time.Date(2026, 8, 31, 10, 30, 0, 0, auckland)
	assert.Equal(t, "2026-08-30", SnapshotDateOf(scrapedAt))

	assert.Equal(t, "2026-08-31", SnapshotDateOf(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)))
}
