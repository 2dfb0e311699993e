package domain

// DataType identifies one of the four scraped lending-rate datasets.
type DataType string

const (
	DataTypeMortgage     DataType = "mortgage-rates"
	DataTypePersonalLoan DataType = "personal-loan-rates"
	DataTypeCarLoan      DataType = "car-loan-rates"
	DataTypeCreditCard   DataType = "credit-card-rates"
)

// DataTypes lists every supported dataset in ingestion order.
var DataTypes = []DataType{
	DataTypeMortgage,
	DataTypePersonalLoan,
	DataTypeCarLoan,
	DataTypeCreditCard,
}

func IsDataType(value string) bool {
	for _, dataType := range DataTypes {
		if string(dataType) == value {
			return true
		}
	}
	return false
}

// ModelType returns the payload type literal stored alongside snapshots.
func (d DataType) ModelType() string {
	switch d {
	case DataTypeMortgage:
		return "MortgageRates"
	case DataTypePersonalLoan:
		return "PersonalLoanRates"
	case DataTypeCarLoan:
		return "CarLoanRates"
	case DataTypeCreditCard:
		return "CreditCardRates"
	}
	return ""
}
