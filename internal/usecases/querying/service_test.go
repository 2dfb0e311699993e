package querying

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ratesapi-nz/rates-api/infrastructure/repository/mocks"
	"github.com/ratesapi-nz/rates-api/internal/domain"
)

func newTestService(t *testing.T) (*Service, *mocks.MockRatesStore) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := mocks.NewMockRatesStore(ctrl)
	runs := mocks.NewMockIngestionRunRepository(ctrl)
	return NewService(store, runs), store
}

func storedLatest(t *testing.T) *domain.LatestRate {
	t.Helper()

	doc := domain.MortgageRates{
		Type: "MortgageRates",
		Data: []domain.MortgageInstitution{
			{ID: "institution:anz", Name: "ANZ"},
			{ID: "institution:bnz", Name: "BNZ"},
		},
		LastUpdated: "2026-08-31T02:00:00Z",
	}
	payload, err := doc.DataJSON()
	require.NoError(t, err)

	return &domain.LatestRate{
		Snapshot: domain.Snapshot{
			DataType:          domain.DataTypeMortgage,
			SnapshotDate:      "2026-08-31",
			ModelType:         "MortgageRates",
			Payload:           payload,
			PayloadHash:       "abc",
			RecordCount:       0,
			ScrapedAt:         "2026-08-31T02:00:00Z",
			SourceLastUpdated: "2026-08-31T02:00:00Z",
		},
		UpdatedAt: "2026-08-31T02:05:00Z",
	}
}

func TestLatestDecodesStoredPayload(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	store.EXPECT().GetLatest(ctx, domain.DataTypeMortgage).Return(storedLatest(t), nil)

	result, err := service.Latest(ctx, domain.DataTypeMortgage)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-31", result.SnapshotDate)
	doc, ok := result.Document.(domain.MortgageRates)
	require.True(t, ok)
	assert.Len(t, doc.Data, 2)
	assert.Equal(t, "2026-08-31T02:00:00Z", doc.LastUpdated)
}

func TestLatestWithoutDataReturnsNotFound(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	store.EXPECT().GetLatest(ctx, domain.DataTypeMortgage).Return(nil, nil)

	_, err := service.Latest(ctx, domain.DataTypeMortgage)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestEntityFiltersByBareSlug(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	store.EXPECT().GetLatest(ctx, domain.DataTypeMortgage).Return(storedLatest(t), nil)

	result, err := service.LatestEntity(ctx, domain.DataTypeMortgage, "bnz")
	require.NoError(t, err)

	doc, ok := result.Document.(domain.MortgageRates)
	require.True(t, ok)
	require.Len(t, doc.Data, 1)
	assert.Equal(t, "institution:bnz", doc.Data[0].ID)
}

func TestLatestEntityFiltersByFullID(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	store.EXPECT().GetLatest(ctx, domain.DataTypeMortgage).Return(storedLatest(t), nil)

	result, err := service.LatestEntity(ctx, domain.DataTypeMortgage, "institution:anz")
	require.NoError(t, err)

	doc := result.Document.(domain.MortgageRates)
	require.Len(t, doc.Data, 1)
	assert.Equal(t, "ANZ", doc.Data[0].Name)
}

func TestLatestEntityUnknownEntityReturnsNotFound(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	store.EXPECT().GetLatest(ctx, domain.DataTypeMortgage).Return(storedLatest(t), nil)

	_, err := service.LatestEntity(ctx, domain.DataTypeMortgage, "westpac")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoricalReturnsNotFoundForMissingDate(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	store.EXPECT().GetHistorical(ctx, domain.DataTypeMortgage, "2026-01-01").Return(nil, nil)

	_, err := service.Historical(ctx, domain.DataTypeMortgage, "2026-01-01")
	assert.ErrorIs(t, err, ErrNotFound)
}
