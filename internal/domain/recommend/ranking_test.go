package recommend

import (
	"math/rand"
	"testing"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedProduct(seller, location string, hits int64) catalog.Product {
	return catalog.Product{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: uuid.New()},
		},
		SellerEmail: seller,
		Location:    location,
		Quantity:    1,
		Publication: catalog.PublicationStatusApproved,
		Hits:        hits,
	}
}

func feedDonation(donor string, hits int64) donation.Donation {
	return donation.Donation{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: uuid.New()},
		},
		DonorEmail:  donor,
		Publication: catalog.PublicationStatusApproved,
		Hits:        hits,
	}
}

func TestFilterProducts(t *testing.T) {
	available := feedProduct("seller@example.com", "Quito", 10)
	own := feedProduct("viewer@example.com", "Quito", 50)
	soldOut := feedProduct("seller@example.com", "Quito", 30)
	soldOut.Quantity = 0
	disabled := feedProduct("seller@example.com", "Quito", 30)
	disabled.IsDisabled = true
	pending := feedProduct("seller@example.com", "Quito", 30)
	pending.Publication = catalog.PublicationStatusPending
	elsewhere := feedProduct("seller@example.com", "Guayaquil", 30)

	out := FilterProducts(
		[]catalog.Product{available, own, soldOut, disabled, pending, elsewhere},
		"viewer@example.com", "quito",
	)

	require.Len(t, out, 1)
	assert.Equal(t, available.ID, out[0].ID)
}

func TestFilterDonations(t *testing.T) {
	available := feedDonation("donor@example.com", 10)
	donated := feedDonation("donor@example.com", 20)
	donated.IsDonated = true
	own := feedDonation("viewer@example.com", 30)

	out := FilterDonations(
		[]donation.Donation{available, donated, own},
		"viewer@example.com", "",
	)

	require.Len(t, out, 1)
	assert.Equal(t, available.ID, out[0].ID)
}

func TestTopProductsByHits(t *testing.T) {
	low := feedProduct("s@example.com", "", 1)
	mid := feedProduct("s@example.com", "", 5)
	high := feedProduct("s@example.com", "", 9)

	out := TopProductsByHits([]catalog.Product{low, high, mid}, 2)

	require.Len(t, out, 2)
	assert.Equal(t, high.ID, out[0].ID)
	assert.Equal(t, mid.ID, out[1].ID)
}

func TestTopProductsByHitsStableTies(t *testing.T) {
	first := feedProduct("s@example.com", "", 5)
	second := feedProduct("s@example.com", "", 5)

	out := TopProductsByHits([]catalog.Product{first, second}, -1)

	require.Len(t, out, 2)
	assert.Equal(t, first.ID, out[0].ID)
	assert.Equal(t, second.ID, out[1].ID)
}

func TestMergeProducts(t *testing.T) {
	shared1 := feedProduct("s@example.com", "", 1)
	primaryOnly := feedProduct("s@example.com", "", 2)
	secondaryOnly := feedProduct("s@example.com", "", 3)

	t.Run("dedupes by ID with primary winning", func(t *testing.T) {
		out := MergeProducts(
			[]catalog.Product{primaryOnly, shared1},
			[]catalog.Product{shared1, secondaryOnly},
			-1,
		)

		require.Len(t, out, 3)
		assert.Equal(t, primaryOnly.ID, out[0].ID)
		assert.Equal(t, shared1.ID, out[1].ID)
		assert.Equal(t, secondaryOnly.ID, out[2].ID)
	})

	t.Run("respects limit", func(t *testing.T) {
		out := MergeProducts(
			[]catalog.Product{primaryOnly, shared1},
			[]catalog.Product{secondaryOnly},
			2,
		)
		assert.Len(t, out, 2)
	})
}

func TestShuffleDonations(t *testing.T) {
	t.Run("pins top hits then top donor items", func(t *testing.T) {
		top1 := feedDonation("star@example.com", 100)
		top2 := feedDonation("other@example.com", 90)
		top3 := feedDonation("other@example.com", 80)
		starExtra := feedDonation("star@example.com", 5)
		rest1 := feedDonation("a@example.com", 3)
		rest2 := feedDonation("b@example.com", 1)

		out := ShuffleDonations(
			[]donation.Donation{rest1, starExtra, top3, top1, rest2, top2},
			rand.New(rand.NewSource(1)),
		)

		require.Len(t, out, 6)
		assert.Equal(t, top1.ID, out[0].ID)
		assert.Equal(t, top2.ID, out[1].ID)
		assert.Equal(t, top3.ID, out[2].ID)
		assert.Equal(t, starExtra.ID, out[3].ID)

		tail := []uuid.UUID{out[4].ID, out[5].ID}
		assert.ElementsMatch(t, []uuid.UUID{rest1.ID, rest2.ID}, tail)
	})

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		input := []donation.Donation{
			feedDonation("a@example.com", 9),
			feedDonation("b@example.com", 7),
			feedDonation("c@example.com", 5),
			feedDonation("d@example.com", 3),
			feedDonation("e@example.com", 1),
			feedDonation("f@example.com", 0),
		}

		out1 := ShuffleDonations(input, rand.New(rand.NewSource(42)))
		out2 := ShuffleDonations(input, rand.New(rand.NewSource(42)))

		require.Equal(t, len(out1), len(out2))
		for i := range out1 {
			assert.Equal(t, out1[i].ID, out2[i].ID)
		}
	})

	t.Run("short input passes through", func(t *testing.T) {
		only := feedDonation("a@example.com", 1)
		out := ShuffleDonations([]donation.Donation{only}, rand.New(rand.NewSource(1)))
		require.Len(t, out, 1)
		assert.Equal(t, only.ID, out[0].ID)
	})
}
