package recommend

import (
	"context"
	"errors"
	"math/rand"
	"time"

	appcatalog "github.com/ecomercado/backend/internal/application/catalog"
	appdonation "github.com/ecomercado/backend/internal/application/donation"
	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/ecomercado/backend/internal/domain/recommend"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultFeedSize = 20
	historyDepth    = 10
)

// RecommendationService builds the personalized product feed and the
// donation feed, and tracks the view hits that drive both.
type RecommendationService struct {
	productRepo  catalog.ProductRepository
	donationRepo donation.DonationRepository
	hitRepo      recommend.HitRepository
	hitCounter   recommend.HitCounter
	newRNG       func() *rand.Rand
	logger       *zap.Logger
}

func NewRecommendationService(
	productRepo catalog.ProductRepository,
	donationRepo donation.DonationRepository,
	hitRepo recommend.HitRepository,
	hitCounter recommend.HitCounter,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		productRepo:  productRepo,
		donationRepo: donationRepo,
		hitRepo:      hitRepo,
		hitCounter:   hitCounter,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		logger: logger,
	}
}

// SetRNGFactory overrides the shuffle source, used by tests for a
// reproducible feed order.
func (s *RecommendationService) SetRNGFactory(factory func() *rand.Rand) {
	s.newRNG = factory
}

// RecordProductView bumps the product's global hit counter and the viewer's
// personal history. The Redis counter is authoritative; the stored hit
// column mirrors it for ranking queries.
func (s *RecommendationService) RecordProductView(ctx context.Context, viewerEmail string, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	total, err := s.hitCounter.Increment(ctx, recommend.TargetKindProduct, productID)
	if err != nil {
		// A dead counter degrades to the stored value rather than failing
		// the view.
		s.logger.Warn("hit counter unavailable", zap.Error(err))
		product.RecordHit()
	} else {
		product.Hits = total
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}

	if viewerEmail != "" && viewerEmail != product.SellerEmail {
		s.recordUserHit(ctx, viewerEmail, productID, recommend.TargetKindProduct)
	}
	return nil
}

// RecordDonationView bumps the donation's hit counters the same way
func (s *RecommendationService) RecordDonationView(ctx context.Context, viewerEmail string, donationID uuid.UUID) error {
	d, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return err
	}

	total, err := s.hitCounter.Increment(ctx, recommend.TargetKindDonation, donationID)
	if err != nil {
		s.logger.Warn("hit counter unavailable", zap.Error(err))
		d.RecordHit()
	} else {
		d.Hits = total
	}

	if err := s.donationRepo.Save(ctx, d); err != nil {
		return err
	}

	if viewerEmail != "" && viewerEmail != d.DonorEmail {
		s.recordUserHit(ctx, viewerEmail, donationID, recommend.TargetKindDonation)
	}
	return nil
}

func (s *RecommendationService) recordUserHit(ctx context.Context, userEmail string, targetID uuid.UUID, kind recommend.TargetKind) {
	hit, err := s.hitRepo.FindByUserAndTarget(ctx, userEmail, targetID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("user hit lookup failed", zap.Error(err))
			return
		}
		hit, err = recommend.NewUserHit(userEmail, targetID, kind)
		if err != nil {
			return
		}
	} else {
		hit.Increment()
	}
	if err := s.hitRepo.Save(ctx, hit); err != nil {
		s.logger.Warn("user hit save failed", zap.Error(err))
	}
}

// ProductFeed builds the personalized product feed: the viewer's most
// viewed products first, padded with same-category siblings, padded again
// with globally popular listings. Duplicates collapse to their first slot.
func (s *RecommendationService) ProductFeed(ctx context.Context, viewerEmail, location string, limit int) ([]appcatalog.ProductResponse, error) {
	if limit <= 0 {
		limit = defaultFeedSize
	}

	var primary []catalog.Product
	if viewerEmail != "" {
		hits, err := s.hitRepo.FindTopByUser(ctx, viewerEmail, recommend.TargetKindProduct, historyDepth)
		if err != nil {
			return nil, err
		}
		if len(hits) > 0 {
			ids := make([]uuid.UUID, len(hits))
			for i, h := range hits {
				ids[i] = h.TargetID
			}
			viewed, err := s.productRepo.FindByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			primary = recommend.FilterProducts(viewed, viewerEmail, location)

			// Same-category siblings of the viewing history
			seen := make(map[string]struct{})
			for _, p := range primary {
				if _, ok := seen[p.Category]; ok {
					continue
				}
				seen[p.Category] = struct{}{}
				siblings, err := s.productRepo.FindByCategory(ctx, p.Category, limit)
				if err != nil {
					return nil, err
				}
				primary = recommend.MergeProducts(primary, recommend.FilterProducts(siblings, viewerEmail, location), -1)
			}
		}
	}

	popular, err := s.productRepo.FindTopByHits(ctx, limit)
	if err != nil {
		return nil, err
	}
	secondary := recommend.TopProductsByHits(recommend.FilterProducts(popular, viewerEmail, location), limit)

	feed := recommend.MergeProducts(primary, secondary, limit)
	return appcatalog.ToProductResponses(feed), nil
}

// DonationFeed builds the donation feed: the three most viewed donations
// pinned first, then the top donor's remaining items, then the rest
// shuffled.
func (s *RecommendationService) DonationFeed(ctx context.Context, viewerEmail, location string, limit int) ([]appdonation.DonationResponse, error) {
	if limit <= 0 {
		limit = defaultFeedSize
	}

	available, err := s.donationRepo.FindAvailable(ctx, limit*2)
	if err != nil {
		return nil, err
	}

	feed := recommend.ShuffleDonations(recommend.FilterDonations(available, viewerEmail, location), s.newRNG())
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return appdonation.ToDonationResponses(feed), nil
}
