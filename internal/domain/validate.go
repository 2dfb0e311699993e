package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ValidateDocument structurally checks an extracted document and returns the
// list of violations, empty when the document is valid. Extraction produces
// plain values; this validator is the independent shape check composed by the
// ingestion pipeline.
func ValidateDocument(doc Document) []string {
	var reasons []string

	if doc.ModelType() != doc.DataType().ModelType() {
		reasons = append(reasons, fmt.Sprintf(
			"model type %q does not match data type %q", doc.ModelType(), doc.DataType()))
	}

	if _, err := time.Parse(time.RFC3339, doc.LastUpdatedAt()); err != nil {
		reasons = append(reasons, fmt.Sprintf("lastUpdated %q is not an ISO-8601 timestamp", doc.LastUpdatedAt()))
	}

	switch typed := doc.(type) {
	case MortgageRates:
		for _, institution := range typed.Data {
			reasons = append(reasons, validateEntity(KindInstitution, institution.ID, institution.Name)...)
			for _, product := range institution.Products {
				reasons = append(reasons, validateID(KindProduct, product.ID)...)
				for _, rate := range product.Rates {
					reasons = append(reasons, validateID(KindRate, rate.ID)...)
					reasons = append(reasons, validateFinite(rate.ID, rate.Rate)...)
					if !IsRateTerm(string(rate.Term)) {
						reasons = append(reasons, fmt.Sprintf("rate %q has unknown term %q", rate.ID, rate.Term))
					}
				}
			}
		}
	case PersonalLoanRates:
		reasons = append(reasons, validateLoanInstitutions(typed.Data)...)
	case CarLoanRates:
		reasons = append(reasons, validateLoanInstitutions(typed.Data)...)
	case CreditCardRates:
		for _, issuer := range typed.Data {
			reasons = append(reasons, validateEntity(KindIssuer, issuer.ID, issuer.Name)...)
			for _, plan := range issuer.Plans {
				reasons = append(reasons, validateID(KindPlan, plan.ID)...)
				for _, value := range plan.SampledRates() {
					reasons = append(reasons, validateFinite(plan.ID, value)...)
				}
			}
		}
	default:
		reasons = append(reasons, fmt.Sprintf("unsupported document type %T", doc))
	}

	return reasons
}

func validateLoanInstitutions(institutions []LoanInstitution) []string {
	var reasons []string
	for _, institution := range institutions {
		reasons = append(reasons, validateEntity(KindInstitution, institution.ID, institution.Name)...)
		for _, product := range institution.Products {
			reasons = append(reasons, validateID(KindProduct, product.ID)...)
			for _, rate := range product.Rates {
				reasons = append(reasons, validateID(KindRate, rate.ID)...)
				reasons = append(reasons, validateFinite(rate.ID, rate.Rate)...)
			}
		}
	}
	return reasons
}

// validateEntity applies to institutions and issuers, which must carry a
// display name. Products and plans go through validateID only: the source
// table legitimately leaves their name cell blank.
func validateEntity(kind IDKind, id, name string) []string {
	reasons := validateID(kind, id)
	if strings.TrimSpace(name) == "" {
		reasons = append(reasons, fmt.Sprintf("%s %q has an empty name", kind, id))
	}
	return reasons
}

func validateID(kind IDKind, id string) []string {
	if !strings.HasPrefix(id, string(kind)+":") {
		return []string{fmt.Sprintf("id %q must start with %q", id, string(kind)+":")}
	}
	return nil
}

func validateFinite(id string, value float64) []string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return []string{fmt.Sprintf("rate %q has a non-finite value", id)}
	}
	return nil
}
