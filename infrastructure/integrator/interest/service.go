package interest

import (
	"context"
	"fmt"

	"github.com/ratesapi-nz/rates-api/infrastructure/integrator/interest/interestclient"
	"github.com/ratesapi-nz/rates-api/internal/config"
	"github.com/ratesapi-nz/rates-api/internal/domain"
)

// Integrator fetches the borrowing page for a data type.
type Integrator interface {
	FetchPage(ctx context.Context, dataType domain.DataType) (string, error)
}

// pagePaths maps each data type to its page on interest.co.nz.
var pagePaths = map[domain.DataType]string{
	domain.DataTypeMortgage:     "borrowing",
	domain.DataTypePersonalLoan: "borrowing/personal-loan",
	domain.DataTypeCarLoan:      "borrowing/car-loan",
	domain.DataTypeCreditCard:   "borrowing/credit-cards",
}

type Service struct {
	cfg    config.Scraper
	client interestclient.Client
}

func New(cfg config.Scraper, client interestclient.Client) *Service {
	return &Service{
		cfg:    cfg,
		client: client,
	}
}

func (s *Service) FetchPage(ctx context.Context, dataType domain.DataType) (string, error) {
	path, ok := pagePaths[dataType]
	if !ok {
		return "", fmt.Errorf("no source page configured for data type %q", dataType)
	}

	return s.client.GetPage(ctx, path)
}
