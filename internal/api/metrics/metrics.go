// Package metrics defines the custom Prometheus metrics of the jobs API.
// HTTP request metrics come from the echoprometheus middleware; everything
// here is domain level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "solosphere"

// ── Session metrics ───────────────────────────────────────────────────────────

// TokensIssuedTotal counts session cookies issued by POST /jwt.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// AuthRejectionsTotal counts requests refused by the session or ownership
// guards.
// Label:
//   - reason: "missing_token", "invalid_token" or "identity_mismatch"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by session or ownership checks.",
	},
	[]string{"reason"},
)

// ── Bid metrics ───────────────────────────────────────────────────────────────

// BidsPlacedTotal counts accepted bids.
var BidsPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_placed_total",
		Help:      "Total number of bids accepted.",
	},
)

// BidDuplicatesTotal counts bids refused because the bidder already bid on a
// job with the same title.
var BidDuplicatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bid_duplicates_total",
		Help:      "Total number of bids rejected as duplicates.",
	},
)

// BidStatusUpdatesTotal counts bid status changes.
// Label:
//   - status: the new status (e.g. "In Progress")
var BidStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bid_status_updates_total",
		Help:      "Total number of bid status updates, by new status.",
	},
	[]string{"status"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListingPageSize observes the page size requested on paged listings.
var ListingPageSize = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "listing_page_size",
		Help:      "Page size requested on paged job listings.",
		Buckets:   []float64{1, 5, 10, 20, 50, 100},
	},
)
