// Package aggregating derives the per-day statistical summary stored next to
// each snapshot. Aggregates are always recomputed from the full document,
// never patched incrementally.
package aggregating

import (
	"fmt"
	"sort"
	"time"

	"github.com/ratesapi-nz/rates-api/internal/domain"
	"github.com/ratesapi-nz/rates-api/pkg/utils"
)

// ComputeDailyAggregate builds the daily aggregate for a document. Entities
// keep the document's order; term buckets are sorted ascending and only
// produced for mortgage data, where terms are a closed vocabulary.
func ComputeDailyAggregate(doc domain.Document, snapshotDate string, generatedAt time.Time) (domain.DailyAggregate, error) {
	aggregate := domain.DailyAggregate{
		DataType:     doc.DataType(),
		SnapshotDate: snapshotDate,
		GeneratedAt:  generatedAt.UTC().Format(time.RFC3339),
		Totals:       doc.Summary(),
	}

	switch typed := doc.(type) {
	case domain.MortgageRates:
		aggregateMortgage(&aggregate, typed)
	case domain.PersonalLoanRates:
		aggregateLoans(&aggregate, typed.Data)
	case domain.CarLoanRates:
		aggregateLoans(&aggregate, typed.Data)
	case domain.CreditCardRates:
		aggregateCreditCards(&aggregate, typed)
	default:
		return domain.DailyAggregate{}, fmt.Errorf("unsupported document type %T", doc)
	}

	return aggregate, nil
}

func aggregateMortgage(aggregate *domain.DailyAggregate, doc domain.MortgageRates) {
	var overall accumulator
	termBuckets := make(map[int]*accumulator)

	aggregate.ByEntity = make([]domain.AggregateEntity, 0, len(doc.Data))
	for _, institution := range doc.Data {
		var entity accumulator
		for _, product := range institution.Products {
			for _, rate := range product.Rates {
				overall.add(rate.Rate)
				entity.add(rate.Rate)

				if rate.TermInMonths != nil {
					bucket, ok := termBuckets[*rate.TermInMonths]
					if !ok {
						bucket = &accumulator{}
						termBuckets[*rate.TermInMonths] = bucket
					}
					bucket.add(rate.Rate)
				}
			}
		}
		aggregate.ByEntity = append(aggregate.ByEntity, domain.AggregateEntity{
			EntityID:   institution.ID,
			EntityName: institution.Name,
			Stats:      entity.stats(),
		})
	}

	aggregate.Overall = overall.stats()
	aggregate.ByTermInMonths = sortedTermBuckets(termBuckets)
}

func aggregateLoans(aggregate *domain.DailyAggregate, institutions []domain.LoanInstitution) {
	var overall accumulator

	aggregate.ByEntity = make([]domain.AggregateEntity, 0, len(institutions))
	for _, institution := range institutions {
		var entity accumulator
		for _, product := range institution.Products {
			for _, rate := range product.Rates {
				overall.add(rate.Rate)
				entity.add(rate.Rate)
			}
		}
		aggregate.ByEntity = append(aggregate.ByEntity, domain.AggregateEntity{
			EntityID:   institution.ID,
			EntityName: institution.Name,
			Stats:      entity.stats(),
		})
	}

	aggregate.Overall = overall.stats()
	aggregate.ByTermInMonths = []domain.TermBucket{}
}

func aggregateCreditCards(aggregate *domain.DailyAggregate, doc domain.CreditCardRates) {
	var overall accumulator

	aggregate.ByEntity = make([]domain.AggregateEntity, 0, len(doc.Data))
	for _, issuer := range doc.Data {
		var entity accumulator
		for _, plan := range issuer.Plans {
			for _, value := range plan.SampledRates() {
				overall.add(value)
				entity.add(value)
			}
		}
		aggregate.ByEntity = append(aggregate.ByEntity, domain.AggregateEntity{
			EntityID:   issuer.ID,
			EntityName: issuer.Name,
			Stats:      entity.stats(),
		})
	}

	aggregate.Overall = overall.stats()
	aggregate.ByTermInMonths = []domain.TermBucket{}
}

func sortedTermBuckets(buckets map[int]*accumulator) []domain.TermBucket {
	terms := make([]int, 0, len(buckets))
	for term := range buckets {
		terms = append(terms, term)
	}
	sort.Ints(terms)

	result := make([]domain.TermBucket, 0, len(terms))
	for _, term := range terms {
		result = append(result, domain.TermBucket{
			TermInMonths: term,
			Stats:        buckets[term].stats(),
		})
	}
	return result
}

type accumulator struct {
	min     float64
	max     float64
	sum     float64
	samples int
}

func (a *accumulator) add(value float64) {
	if a.samples == 0 || value < a.min {
		a.min = value
	}
	if a.samples == 0 || value > a.max {
		a.max = value
	}
	a.sum += value
	a.samples++
}

func (a *accumulator) stats() domain.Stats {
	if a.samples == 0 {
		return domain.Stats{Samples: 0}
	}

	min := utils.Round6(a.min)
	max := utils.Round6(a.max)
	avg := utils.Round6(a.sum / float64(a.samples))
	return domain.Stats{
		Min:     &min,
		Max:     &max,
		Avg:     &avg,
		Samples: a.samples,
	}
}
