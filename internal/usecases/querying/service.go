// Package querying serves the read side: latest documents, entity filtering,
// snapshot history and aggregates. Everything here is side-effect-free.
package querying

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/ratesapi-nz/rates-api/infrastructure/repository"
	"github.com/ratesapi-nz/rates-api/internal/domain"
)

// ErrNotFound reports a read that matched nothing: an unknown entity, a date
// with no snapshot, or a data type never ingested.
var ErrNotFound = errors.New("no data found")

// DocumentResult pairs a decoded document with its snapshot metadata.
type DocumentResult struct {
	Document     domain.Document `json:"document"`
	SnapshotDate string          `json:"snapshotDate"`
	ScrapedAt    string          `json:"scrapedAt"`
	PayloadHash  string          `json:"payloadHash"`
}

type Querier interface {
	Latest(ctx context.Context, dataType domain.DataType) (*DocumentResult, error)
	LatestEntity(ctx context.Context, dataType domain.DataType, entityID string) (*DocumentResult, error)
	Historical(ctx context.Context, dataType domain.DataType, date string) (*DocumentResult, error)
	Dates(ctx context.Context, dataType domain.DataType) ([]string, error)
	TimeSeries(ctx context.Context, dataType domain.DataType, startDate, endDate string) (map[string]json.RawMessage, error)
	Aggregate(ctx context.Context, dataType domain.DataType, date string) (*domain.DailyAggregate, error)
	AggregateTimeSeries(ctx context.Context, dataType domain.DataType, startDate, endDate string) (map[string]domain.DailyAggregate, error)
	RecentRuns(ctx context.Context, dataType domain.DataType, limit uint64) ([]domain.IngestionRun, error)
}

type Service struct {
	store repository.RatesStore
	runs  repository.IngestionRunRepository
}

func NewService(store repository.RatesStore, runs repository.IngestionRunRepository) *Service {
	return &Service{
		store: store,
		runs:  runs,
	}
}

func (s *Service) Latest(ctx context.Context, dataType domain.DataType) (*DocumentResult, error) {
	latest, err := s.store.GetLatest(ctx, dataType)
	if err != nil {
		return nil, errors.Wrap(err, "loading latest payload")
	}
	if latest == nil {
		return nil, ErrNotFound
	}

	return decodeSnapshot(latest.Snapshot)
}

// LatestEntity returns the latest document narrowed to one institution or
// issuer. The ID may be given in full ("institution:anz") or as the bare slug
// ("anz").
func (s *Service) LatestEntity(ctx context.Context, dataType domain.DataType, entityID string) (*DocumentResult, error) {
	result, err := s.Latest(ctx, dataType)
	if err != nil {
		return nil, err
	}

	filtered, found := filterEntity(result.Document, entityID)
	if !found {
		return nil, ErrNotFound
	}

	result.Document = filtered
	return result, nil
}

func (s *Service) Historical(ctx context.Context, dataType domain.DataType, date string) (*DocumentResult, error) {
	snapshot, err := s.store.GetHistorical(ctx, dataType, date)
	if err != nil {
		return nil, errors.Wrap(err, "loading historical snapshot")
	}
	if snapshot == nil {
		return nil, ErrNotFound
	}

	return decodeSnapshot(*snapshot)
}

func (s *Service) Dates(ctx context.Context, dataType domain.DataType) ([]string, error) {
	return s.store.ListDates(ctx, dataType)
}

func (s *Service) TimeSeries(ctx context.Context, dataType domain.DataType, startDate, endDate string) (map[string]json.RawMessage, error) {
	return s.store.GetTimeSeries(ctx, dataType, startDate, endDate)
}

func (s *Service) Aggregate(ctx context.Context, dataType domain.DataType, date string) (*domain.DailyAggregate, error) {
	aggregate, err := s.store.GetAggregate(ctx, dataType, date)
	if err != nil {
		return nil, errors.Wrap(err, "loading daily aggregate")
	}
	if aggregate == nil {
		return nil, ErrNotFound
	}

	return aggregate, nil
}

func (s *Service) AggregateTimeSeries(ctx context.Context, dataType domain.DataType, startDate, endDate string) (map[string]domain.DailyAggregate, error) {
	return s.store.GetAggregateTimeSeries(ctx, dataType, startDate, endDate)
}

func (s *Service) RecentRuns(ctx context.Context, dataType domain.DataType, limit uint64) ([]domain.IngestionRun, error) {
	return s.runs.ListRecent(ctx, dataType, limit)
}

func decodeSnapshot(snapshot domain.Snapshot) (*DocumentResult, error) {
	wrapped, err := json.Marshal(struct {
		Type        string          `json:"type"`
		Data        json.RawMessage `json:"data"`
		LastUpdated string          `json:"lastUpdated"`
	}{
		Type:        snapshot.ModelType,
		Data:        snapshot.Payload,
		LastUpdated: snapshot.SourceLastUpdated,
	})
	if err != nil {
		return nil, errors.Wrap(err, "re-encoding stored payload")
	}

	doc, err := domain.ParseDocument(snapshot.DataType, wrapped)
	if err != nil {
		return nil, errors.Wrap(err, "decoding stored payload")
	}

	return &DocumentResult{
		Document:     doc,
		SnapshotDate: snapshot.SnapshotDate,
		ScrapedAt:    snapshot.ScrapedAt,
		PayloadHash:  snapshot.PayloadHash,
	}, nil
}

func filterEntity(doc domain.Document, entityID string) (domain.Document, bool) {
	switch typed := doc.(type) {
	case domain.MortgageRates:
		for _, institution := range typed.Data {
			if matchesEntityID(institution.ID, "institution", entityID) {
				typed.Data = []domain.MortgageInstitution{institution}
				return typed, true
			}
		}
	case domain.PersonalLoanRates:
		if institution, ok := findLoanInstitution(typed.Data, entityID); ok {
			typed.Data = []domain.LoanInstitution{institution}
			return typed, true
		}
	case domain.CarLoanRates:
		if institution, ok := findLoanInstitution(typed.Data, entityID); ok {
			typed.Data = []domain.LoanInstitution{institution}
			return typed, true
		}
	case domain.CreditCardRates:
		for _, issuer := range typed.Data {
			if matchesEntityID(issuer.ID, "issuer", entityID) {
				typed.Data = []domain.Issuer{issuer}
				return typed, true
			}
		}
	}

	return doc, false
}

func findLoanInstitution(institutions []domain.LoanInstitution, entityID string) (domain.LoanInstitution, bool) {
	for _, institution := range institutions {
		if matchesEntityID(institution.ID, "institution", entityID) {
			return institution, true
		}
	}
	return domain.LoanInstitution{}, false
}

func matchesEntityID(id, kind, requested string) bool {
	requested = strings.ToLower(strings.TrimSpace(requested))
	if requested == "" {
		return false
	}
	if !strings.Contains(requested, ":") {
		requested = fmt.Sprintf("%s:%s", kind, requested)
	}
	return id == requested
}
