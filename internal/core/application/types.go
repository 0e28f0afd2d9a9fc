package application

import (
	"time"

	"github.com/shopspring/decimal"
)

// Display-ready values derived from raw ledger records. They are built fresh
// on every normalization call and carry no identity beyond the source record's
// transaction hash.

// OrderEntry is the normalized view of an open order.
type OrderEntry struct {
	TxHash        string
	GiveRemaining decimal.Decimal
	GiveAsset     string
	Price         decimal.Decimal
	// PricePair is the asset pair the price is quoted in, tagged with the
	// side, ie. "XTP/BTC bid".
	PricePair   string
	FeeRequired decimal.Decimal
	FeeProvided decimal.Decimal
	// TimeLeft is the number of blocks until expiration, negative for orders
	// that already expired.
	TimeLeft int64
}

// BetEntry is the normalized view of an open bet.
type BetEntry struct {
	TxHash      string
	BetType     string
	FeedAddress string
	Deadline    time.Time
	// TargetValue is nil when the raw record carries the zero sentinel.
	TargetValue *float64
	// Leverage is nil when the raw record carries the zero sentinel,
	// otherwise the raw leverage scaled by the leverage denominator.
	Leverage       *decimal.Decimal
	WagerRemaining decimal.Decimal
	Odds           decimal.Decimal
	TimeLeft       int64
}

// FeedDigestEntry is the normalized view of a feed broadcast.
type FeedDigestEntry struct {
	Source      string
	Timestamp   time.Time
	Text        string
	Value       float64
	FeeFraction decimal.Decimal
}

// MatchEntry is the normalized view of an order match awaiting payment.
type MatchEntry struct {
	MatchID  string
	TimeLeft int64
}

// MarketSnapshot aggregates the four market views.
type MarketSnapshot struct {
	PendingMatches []MatchEntry
	OpenOrders     []OrderEntry
	OpenBets       []BetEntry
	Feeds          []FeedDigestEntry
}
