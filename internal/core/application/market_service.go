package application

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tokenparty/tparty-client/internal/core/domain"
	"github.com/tokenparty/tparty-client/pkg/mathutil"
)

// feedRetentionSeconds is the age limit for feed broadcasts shown in the
// market digest: two weeks.
const feedRetentionSeconds = 1_209_600

// MarketService turns raw ledger records into comparable, display-ready
// market views. All methods are pure; the current chain height is supplied by
// the caller and a height of 0 (nothing indexed) degrades countdowns into
// negative values instead of failing.
type MarketService interface {
	NormalizeOrder(order domain.Order, chainHeight uint64) OrderEntry
	NormalizeBet(bet domain.Bet, chainHeight uint64) BetEntry
	NormalizeFeed(feed domain.FeedEntry) FeedDigestEntry
	NormalizeOrderMatch(match domain.OrderMatch, chainHeight uint64) MatchEntry
	BuildMarketSnapshot(
		myAddresses []string,
		openOrders []domain.Order,
		openBets []domain.Bet,
		feedEntries []domain.FeedEntry,
		pendingMatches []domain.OrderMatch,
		chainHeight uint64,
		now time.Time,
		giveAsset, getAsset string,
	) *MarketSnapshot
}

type marketService struct {
	net domain.NetworkParams
}

// NewMarketService returns a MarketService scaling quantities with the
// protocol constants of the given network bundle.
func NewMarketService(net domain.NetworkParams) MarketService {
	return &marketService{net}
}

func (m *marketService) NormalizeOrder(
	order domain.Order, chainHeight uint64,
) OrderEntry {
	var price decimal.Decimal
	var pricePair string
	// The asset that sorts second lexicographically is the quote asset. This
	// tie-break makes prices of mirrored orders comparable: the same pair is
	// always quoted in the same direction, tagged ask or bid.
	if order.GetAsset < order.GiveAsset {
		price = ratio(order.GetQuantity, order.GiveQuantity)
		pricePair = order.GetAsset + "/" + order.GiveAsset + " ask"
	} else {
		price = ratio(order.GiveQuantity, order.GetQuantity)
		pricePair = order.GiveAsset + "/" + order.GetAsset + " bid"
	}

	return OrderEntry{
		TxHash:        order.TxHash,
		GiveRemaining: mathutil.Div(order.GiveRemaining, domain.Unit),
		GiveAsset:     order.GiveAsset,
		Price:         price,
		PricePair:     pricePair,
		FeeRequired:   mathutil.Div(order.FeeRequired, domain.Unit),
		FeeProvided:   mathutil.Div(order.FeeProvided, domain.Unit),
		TimeLeft:      blocksLeft(order.ExpireIndex, chainHeight),
	}
}

func (m *marketService) NormalizeBet(
	bet domain.Bet, chainHeight uint64,
) BetEntry {
	// Odds are a raw integer ratio, both quantities being in the same asset.
	odds := ratio(bet.CounterwagerQuantity, bet.WagerQuantity)

	var targetValue *float64
	if bet.TargetValue != 0 {
		v := bet.TargetValue
		targetValue = &v
	}

	var leverage *decimal.Decimal
	if bet.Leverage != 0 {
		l := mathutil.DivDecimal(
			decimal.NewFromInt(bet.Leverage),
			decimal.NewFromInt(domain.LeverageUnit),
		)
		leverage = &l
	}

	return BetEntry{
		TxHash:         bet.TxHash,
		BetType:        domain.BetTypeName[bet.BetType],
		FeedAddress:    bet.FeedAddress,
		Deadline:       time.Unix(bet.Deadline, 0).UTC(),
		TargetValue:    targetValue,
		Leverage:       leverage,
		WagerRemaining: mathutil.Div(bet.WagerRemaining, domain.Unit),
		Odds:           odds,
		TimeLeft:       blocksLeft(bet.ExpireIndex, chainHeight),
	}
}

func (m *marketService) NormalizeFeed(feed domain.FeedEntry) FeedDigestEntry {
	text := feed.Text
	if text == "" {
		text = "<Locked>"
	}

	return FeedDigestEntry{
		Source:      feed.Source,
		Timestamp:   time.Unix(feed.Timestamp, 0).UTC(),
		Text:        text,
		Value:       feed.Value,
		FeeFraction: mathutil.Div(feed.FeeFractionInt, domain.Unit),
	}
}

func (m *marketService) NormalizeOrderMatch(
	match domain.OrderMatch, chainHeight uint64,
) MatchEntry {
	return MatchEntry{
		MatchID:  MatchID(match.Tx0Hash, match.Tx1Hash),
		TimeLeft: blocksLeft(match.MatchExpireIndex, chainHeight),
	}
}

func (m *marketService) BuildMarketSnapshot(
	myAddresses []string,
	openOrders []domain.Order,
	openBets []domain.Bet,
	feedEntries []domain.FeedEntry,
	pendingMatches []domain.OrderMatch,
	chainHeight uint64,
	now time.Time,
	giveAsset, getAsset string,
) *MarketSnapshot {
	mine := make(map[string]struct{}, len(myAddresses))
	for _, addr := range myAddresses {
		mine[addr] = struct{}{}
	}

	matches := make([]MatchEntry, 0, len(pendingMatches))
	for _, match := range pendingMatches {
		_, ok0 := mine[match.Tx0Address]
		_, ok1 := mine[match.Tx1Address]
		if !ok0 && !ok1 {
			continue
		}
		matches = append(matches, m.NormalizeOrderMatch(match, chainHeight))
	}

	orders := make([]OrderEntry, 0, len(openOrders))
	for _, order := range openOrders {
		if giveAsset != "" && order.GiveAsset != giveAsset {
			continue
		}
		if getAsset != "" && order.GetAsset != getAsset {
			continue
		}
		orders = append(orders, m.NormalizeOrder(order, chainHeight))
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Price.LessThan(orders[j].Price)
	})

	bets := make([]BetEntry, 0, len(openBets))
	for _, bet := range openBets {
		bets = append(bets, m.NormalizeBet(bet, chainHeight))
	}

	return &MarketSnapshot{
		PendingMatches: matches,
		OpenOrders:     orders,
		OpenBets:       bets,
		Feeds:          m.feedDigest(feedEntries, now),
	}
}

// feedDigest retains, among the entries broadcast within the last two weeks,
// the most recent one per publishing address. Entries usually arrive in
// descending timestamp order but the maximum is selected explicitly so an
// unordered result set yields the same digest.
func (m *marketService) feedDigest(
	feedEntries []domain.FeedEntry, now time.Time,
) []FeedDigestEntry {
	oldest := now.Unix() - feedRetentionSeconds
	latest := make(map[string]domain.FeedEntry)
	for _, feed := range feedEntries {
		if feed.Timestamp < oldest {
			continue
		}
		if seen, ok := latest[feed.Source]; ok && seen.Timestamp >= feed.Timestamp {
			continue
		}
		latest[feed.Source] = feed
	}

	digest := make([]FeedDigestEntry, 0, len(latest))
	for _, feed := range latest {
		digest = append(digest, m.NormalizeFeed(feed))
	}
	sort.SliceStable(digest, func(i, j int) bool {
		return digest[i].Timestamp.After(digest[j].Timestamp)
	})
	return digest
}

// MatchID builds the composite identifier of an order match. The two hashes
// are combined in lexicographic order so both sides of the match derive the
// same identifier.
func MatchID(txHashA, txHashB string) string {
	if txHashB < txHashA {
		txHashA, txHashB = txHashB, txHashA
	}
	return txHashA + txHashB
}

func blocksLeft(expireIndex, chainHeight uint64) int64 {
	return int64(expireIndex) - int64(chainHeight)
}

// ratio divides x by y, reporting zero for a zero divisor. Raw records with a
// zero quantity are malformed but well typed, so they render as degenerate
// rows instead of failing the whole view.
func ratio(x, y uint64) decimal.Decimal {
	if y == 0 {
		return decimal.Zero
	}
	return mathutil.Div(x, y)
}
