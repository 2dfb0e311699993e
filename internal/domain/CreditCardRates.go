package domain

import "encoding/json"

// CreditCardPlan is one row of the credit-card table. Every numeric field
// defaults to nil independently when its cell fails to parse; a parse failure
// must never turn into an accidental zero.
type CreditCardPlan struct {
	ID                         string   `json:"id"`
	Name                       string   `json:"name"`
	InterestFreePeriodInMonths *float64 `json:"interestFreePeriodInMonths"`
	PrimaryFeeNZD              *float64 `json:"primaryFeeNZD"`
	BalanceTransferRate        *float64 `json:"balanceTransferRate"`
	BalanceTransferPeriod      *string  `json:"balanceTransferPeriod"`
	CashAdvanceRate            *float64 `json:"cashAdvanceRate"`
	PurchaseRate               *float64 `json:"purchaseRate"`
}

type Issuer struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Plans []CreditCardPlan `json:"plans"`
}

// CreditCardRates is the full credit-card payload.
type CreditCardRates struct {
	Type        string   `json:"type"`
	Data        []Issuer `json:"data"`
	LastUpdated string   `json:"lastUpdated"`
}

func (c CreditCardRates) DataType() DataType { return DataTypeCreditCard }

func (c CreditCardRates) ModelType() string { return c.Type }

func (c CreditCardRates) LastUpdatedAt() string { return c.LastUpdated }

func (c CreditCardRates) DataJSON() ([]byte, error) {
	return json.Marshal(c.Data)
}

// Summary counts purchase, cash-advance and balance-transfer rates as the
// plan's rate points; the fee and interest-free period are descriptive.
func (c CreditCardRates) Summary() DatasetSummary {
	summary := DatasetSummary{Entities: len(c.Data)}
	for _, issuer := range c.Data {
		summary.Products += len(issuer.Plans)
		for _, plan := range issuer.Plans {
			summary.RatePoints += len(plan.SampledRates())
		}
	}
	return summary
}

// SampledRates returns the plan's comparable rate values in a fixed order.
func (p CreditCardPlan) SampledRates() []float64 {
	values := make([]float64, 0, 3)
	for _, candidate := range []*float64{p.PurchaseRate, p.CashAdvanceRate, p.BalanceTransferRate} {
		if candidate != nil {
			values = append(values, *candidate)
		}
	}
	return values
}
