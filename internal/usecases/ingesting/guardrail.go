package ingesting

import (
	"fmt"
	"math"

	"github.com/ratesapi-nz/rates-api/internal/config"
	"github.com/ratesapi-nz/rates-api/internal/domain"
)

// EvaluateGuardrail returns the reasons a payload looks truncated or
// malformed, or nil when it is safe to store. The static floors always apply;
// the relative floors only when prior accepted data exists. The guardrail
// never mutates the document: it accepts or rejects it whole.
func EvaluateGuardrail(ingestion config.Ingestion, dataType domain.DataType, next domain.DatasetSummary, previous *domain.DatasetSummary) []string {
	var reasons []string

	thresholds := ingestion.ThresholdsFor(string(dataType))
	if next.Entities < thresholds.MinEntities {
		reasons = append(reasons, fmt.Sprintf(
			"entity count %d is below the static floor %d", next.Entities, thresholds.MinEntities,
		))
	}
	if next.RatePoints < thresholds.MinRatePoints {
		reasons = append(reasons, fmt.Sprintf(
			"rate point count %d is below the static floor %d", next.RatePoints, thresholds.MinRatePoints,
		))
	}

	if previous != nil {
		factor := ingestion.RelativeDropFactor
		if entityFloor := relativeFloor(previous.Entities, factor); next.Entities < entityFloor {
			reasons = append(reasons, fmt.Sprintf(
				"entity count dropped from %d to %d, below the relative floor %d",
				previous.Entities, next.Entities, entityFloor,
			))
		}
		if ratePointFloor := relativeFloor(previous.RatePoints, factor); next.RatePoints < ratePointFloor {
			reasons = append(reasons, fmt.Sprintf(
				"rate point count dropped from %d to %d, below the relative floor %d",
				previous.RatePoints, next.RatePoints, ratePointFloor,
			))
		}
	}

	return reasons
}

func relativeFloor(previous int, factor float64) int {
	return int(math.Floor(float64(previous) * factor))
}
