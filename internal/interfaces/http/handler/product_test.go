package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/ecomercado/backend/internal/application/catalog"
	recommendapp "github.com/ecomercado/backend/internal/application/recommend"
	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/ecomercado/backend/internal/domain/recommend"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/ecomercado/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// stubProductRepository serves one product and fails every write.
type stubProductRepository struct {
	product *catalog.Product
	saveErr error
}

func (s *stubProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if s.product != nil && s.product.ID == id {
		return s.product, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (s *stubProductRepository) FindBySeller(ctx context.Context, sellerEmail string, filter shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (s *stubProductRepository) FindByCategory(ctx context.Context, category string, limit int) ([]catalog.Product, error) {
	return nil, nil
}

func (s *stubProductRepository) FindTopByHits(ctx context.Context, limit int) ([]catalog.Product, error) {
	return nil, nil
}

func (s *stubProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	return nil, nil
}

func (s *stubProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return s.saveErr
}

func (s *stubProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	return s.saveErr
}

func (s *stubProductRepository) Delete(ctx context.Context, id uuid.UUID) error { return s.saveErr }

func (s *stubProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

var _ catalog.ProductRepository = (*stubProductRepository)(nil)

type stubHitCounter struct{}

func (stubHitCounter) Increment(ctx context.Context, kind recommend.TargetKind, targetID uuid.UUID) (int64, error) {
	return 1, nil
}

func TestProductHandler_GetByID_ViewTracking(t *testing.T) {
	gin.SetMode(gin.TestMode)

	product, err := catalog.NewProduct(uuid.New(), "seller@example.com", "Bamboo Cup", "Kitchen",
		decimal.NewFromInt(10), 3, "", "")
	require.NoError(t, err)

	repo := &stubProductRepository{product: product, saveErr: errors.New("connection reset")}
	recommendSvc := recommendapp.NewRecommendationService(
		repo, donation.DonationRepository(nil), recommend.HitRepository(nil), stubHitCounter{}, zap.NewNop())
	h := NewProductHandler(catalogapp.NewProductService(repo, zap.NewNop()), nil, recommendSvc)

	core, logs := observer.New(zap.WarnLevel)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, uuid.New().String())
		c.Set(middleware.JWTEmailKey, "viewer@example.com")
		c.Set("logger", zap.New(core))
	})
	router.GET("/products/:id", h.GetByID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/products/"+product.ID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bamboo Cup")

	entries := logs.FilterMessage("view tracking failed").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "connection reset")
}
