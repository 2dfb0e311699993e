package domain

// Stats summarizes a set of sampled rate values. All value fields are nil
// when samples is zero; an empty bucket never divides by zero or emits NaN.
type Stats struct {
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Avg     *float64 `json:"avg"`
	Samples int      `json:"samples"`
}

type AggregateEntity struct {
	EntityID   string `json:"entityId"`
	EntityName string `json:"entityName"`
	Stats      Stats  `json:"stats"`
}

type TermBucket struct {
	TermInMonths int   `json:"termInMonths"`
	Stats        Stats `json:"stats"`
}

// DailyAggregate is the derived summary stored alongside each snapshot. It is
// recomputed whole whenever its snapshot is written, never patched.
type DailyAggregate struct {
	DataType       DataType          `json:"dataType"`
	SnapshotDate   string            `json:"snapshotDate"`
	GeneratedAt    string            `json:"generatedAt"`
	Overall        Stats             `json:"overall"`
	ByEntity       []AggregateEntity `json:"byEntity"`
	ByTermInMonths []TermBucket      `json:"byTermInMonths"`
	Totals         DatasetSummary    `json:"totals"`
}
