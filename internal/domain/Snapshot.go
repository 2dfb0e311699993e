package domain

import (
	"encoding/json"
	"time"
)

// Snapshot is one day's accepted payload for a data type. At most one
// snapshot exists per (dataType, snapshotDate); a later ingestion on the same
// date replaces it.
type Snapshot struct {
	DataType          DataType        `json:"dataType"`
	SnapshotDate      string          `json:"snapshotDate"` // YYYY-MM-DD
	ModelType         string          `json:"modelType"`
	Payload           json.RawMessage `json:"payload"`
	PayloadHash       string          `json:"payloadHash"`
	RecordCount       int             `json:"recordCount"`
	ScrapedAt         string          `json:"scrapedAt"` // ISO-8601 UTC
	SourceLastUpdated string          `json:"sourceLastUpdated"`
}

// LatestRate is the single current-truth record per data type that reads
// serve by default.
type LatestRate struct {
	Snapshot
	UpdatedAt string `json:"updatedAt"`
}

// IngestionRun is an append-only audit record. Rows are never mutated.
type IngestionRun struct {
	ID           string    `json:"id"`
	DataType     DataType  `json:"dataType"`
	SnapshotDate string    `json:"snapshotDate"`
	Status       RunStatus `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	StartedAt    string    `json:"startedAt"`
	FinishedAt   string    `json:"finishedAt"`
	PayloadHash  string    `json:"payloadHash,omitempty"`
}

type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusSkipped RunStatus = "skipped"
	RunStatusFailed  RunStatus = "failed"
)

// CompareSnapshotRecency orders snapshots by (snapshotDate, scrapedAt) under
// lexical string comparison: date first, then timestamp. Both fields are ISO
// formatted so lexical order is chronological order.
func CompareSnapshotRecency(leftDate, leftScrapedAt, rightDate, rightScrapedAt string) int {
	if leftDate != rightDate {
		if leftDate < rightDate {
			return -1
		}
		return 1
	}

	switch {
	case leftScrapedAt < rightScrapedAt:
		return -1
	case leftScrapedAt > rightScrapedAt:
		return 1
	}
	return 0
}

// SnapshotDateOf derives the YYYY-MM-DD snapshot key from a scrape timestamp.
func SnapshotDateOf(scrapedAt time.Time) string {
	return scrapedAt.UTC().Format("2006-01-02")
}
