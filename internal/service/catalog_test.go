package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jewellerymart/catalog/internal/models"
	"github.com/jewellerymart/catalog/internal/query"
	"github.com/jewellerymart/catalog/internal/repo"
	"github.com/jewellerymart/catalog/internal/transport"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}))

	return &repo.GormRepo{DB: db}
}

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Repo: newTestRepo(t)}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Name:      "Gold Ring",
		Price:     1200,
		Category:  "rings",
		MetalType: "gold",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Gold Ring", created.Name)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.CreateProductRequest
	}{
		{name: "empty name", req: transport.CreateProductRequest{Name: "", Price: 10}},
		{name: "negative price", req: transport.CreateProductRequest{Name: "Ring", Price: -1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	svc := newTestCatalogService(t)

	_, err := svc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_UpdateProduct_ReplacesMutableFieldsOnly(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Name:      "Gold Ring",
		Price:     1200,
		Category:  "rings",
		MetalType: "gold",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, created.ID, transport.UpdateProductRequest{
		Name:        "Rose Gold Ring",
		Price:       1350,
		Category:    "rings",
		MetalType:   "rose gold",
		Image:       "rose-ring.jpg",
		Description: "hand finished",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Rose Gold Ring", updated.Name)
	assert.InDelta(t, 1350, updated.Price, 1e-9)
	assert.Equal(t, "rose gold", updated.MetalType)
	assert.Equal(t, "rose-ring.jpg", updated.Image)
	assert.Equal(t, "hand finished", updated.Description)
}

func TestCatalogService_UpdateProduct_NotFoundLeavesStorageUnchanged(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	_, err := svc.UpdateProduct(ctx, "missing", transport.UpdateProductRequest{Name: "X", Price: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	// Update never creates.
	items, err := svc.ListProducts(ctx, query.Spec{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCatalogService_UpdateProduct_NegativePriceRejected(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Ring", Price: 10})
	require.NoError(t, err)

	_, err = svc.UpdateProduct(ctx, created.ID, transport.UpdateProductRequest{Name: "Ring", Price: -5})
	assert.ErrorIs(t, err, ErrValidation)

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10, got.Price, 1e-9)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Ring", Price: 10})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	_, err = svc.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, created.ID), ErrNotFound)
}

func TestCatalogService_ListProducts_FilterAndSort(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	seed := []transport.CreateProductRequest{
		{Name: "Silver Ring", Price: 30, Category: "rings", MetalType: "silver"},
		{Name: "Gold Chain", Price: 500, Category: "chains", MetalType: "gold"},
		{Name: "Gold Ring", Price: 120, Category: "rings", MetalType: "gold"},
		{Name: "Plain Band", Price: 15, Category: "rings", MetalType: "silver"},
	}
	for _, req := range seed {
		_, err := svc.CreateProduct(ctx, req)
		require.NoError(t, err)
	}

	got, err := svc.ListProducts(ctx, query.Spec{Category: "Rings", MetalType: "silver", Sort: query.SortPriceLowToHigh})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Plain Band", got[0].Name)
	assert.Equal(t, "Silver Ring", got[1].Name)
}

func TestCatalogService_ListProducts_SearchRetrieval(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	for _, req := range []transport.CreateProductRequest{
		{Name: "Gold Ring", Price: 120},
		{Name: "Pearl Necklace", Price: 80},
	} {
		_, err := svc.CreateProduct(ctx, req)
		require.NoError(t, err)
	}

	got, err := svc.ListProducts(ctx, query.Spec{Search: "RING"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gold Ring", got[0].Name)
}

type stubSearcher struct {
	results []models.Product
	term    string
}

func (s *stubSearcher) Search(_ context.Context, term string) ([]models.Product, error) {
	s.term = term
	return s.results, nil
}

func TestCatalogService_ListProducts_UsesSearcherWhenConfigured(t *testing.T) {
	svc := newTestCatalogService(t)
	searcher := &stubSearcher{results: []models.Product{
		{ID: "1", Name: "Gold Ring", Category: "rings"},
		{ID: "2", Name: "Gold Chain", Category: "chains"},
	}}
	svc.Search = searcher

	got, err := svc.ListProducts(context.Background(), query.Spec{Search: "gold", Category: "rings"})
	require.NoError(t, err)
	assert.Equal(t, "gold", searcher.term)
	require.Len(t, got, 1)
	assert.Equal(t, "Gold Ring", got[0].Name)
}
