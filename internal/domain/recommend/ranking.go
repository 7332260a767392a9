// Package recommend holds the pure ranking logic behind the product and
// donation feeds: hit-count ordering, merge-with-dedup of recommendation
// sources, and the structured donation shuffle.
package recommend

import (
	"math/rand"
	"sort"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/google/uuid"
)

// FilterProducts removes listings a viewer should not see: disabled,
// unapproved, sold out, their own, or outside the location filter.
func FilterProducts(products []catalog.Product, viewerEmail, location string) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if !p.IsAvailable() {
			continue
		}
		if viewerEmail != "" && p.SellerEmail == viewerEmail {
			continue
		}
		if !p.MatchesLocation(location) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterDonations removes donations a viewer should not see
func FilterDonations(donations []donation.Donation, viewerEmail, location string) []donation.Donation {
	out := make([]donation.Donation, 0, len(donations))
	for _, d := range donations {
		if !d.IsAvailable() {
			continue
		}
		if viewerEmail != "" && d.DonorEmail == viewerEmail {
			continue
		}
		if !d.MatchesLocation(location) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// TopProductsByHits returns up to n products ordered by hit count, highest
// first. Ties keep their input order.
func TopProductsByHits(products []catalog.Product, n int) []catalog.Product {
	sorted := make([]catalog.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Hits > sorted[j].Hits
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MergeProducts merges the viewer's hit-history products with same-category
// siblings, de-duplicating by product ID. Primary entries win and keep their
// position; the result is bounded to limit (unbounded when limit < 0).
func MergeProducts(primary, secondary []catalog.Product, limit int) []catalog.Product {
	seen := make(map[uuid.UUID]struct{}, len(primary)+len(secondary))
	merged := make([]catalog.Product, 0, len(primary)+len(secondary))

	appendUnique := func(items []catalog.Product) {
		for _, p := range items {
			if limit >= 0 && len(merged) >= limit {
				return
			}
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			merged = append(merged, p)
		}
	}

	appendUnique(primary)
	appendUnique(secondary)
	return merged
}

// PinnedCount is how many highest-hit donations stay at the head of the feed
const PinnedCount = 3

// ShuffleDonations orders the donation feed: the top-PinnedCount donations
// by hit count come first, followed by the top donor's remaining items, then
// the rest in randomized order. The rng is injected so the ordering is
// reproducible under test.
func ShuffleDonations(donations []donation.Donation, rng *rand.Rand) []donation.Donation {
	if len(donations) <= 1 {
		return append([]donation.Donation(nil), donations...)
	}

	byHits := make([]donation.Donation, len(donations))
	copy(byHits, donations)
	sort.SliceStable(byHits, func(i, j int) bool {
		return byHits[i].Hits > byHits[j].Hits
	})

	pinned := PinnedCount
	if pinned > len(byHits) {
		pinned = len(byHits)
	}

	out := make([]donation.Donation, 0, len(byHits))
	placed := make(map[uuid.UUID]struct{}, len(byHits))
	for _, d := range byHits[:pinned] {
		out = append(out, d)
		placed[d.ID] = struct{}{}
	}

	// The top donor is whoever listed the highest-hit donation; their other
	// items precede the shuffled remainder.
	topDonor := byHits[0].DonorEmail
	for _, d := range byHits[pinned:] {
		if d.DonorEmail != topDonor {
			continue
		}
		out = append(out, d)
		placed[d.ID] = struct{}{}
	}

	remainder := make([]donation.Donation, 0, len(byHits)-len(out))
	for _, d := range byHits {
		if _, ok := placed[d.ID]; ok {
			continue
		}
		remainder = append(remainder, d)
	}
	rng.Shuffle(len(remainder), func(i, j int) {
		remainder[i], remainder[j] = remainder[j], remainder[i]
	})

	return append(out, remainder...)
}
