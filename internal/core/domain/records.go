package domain

// Raw ledger records as returned by the ledger server. All monetary
// quantities are fixed-point integers scaled by Unit; asset identifiers are
// opaque strings ordered by plain string comparison.

// Unit is the fixed-point divisor of all ledger quantities.
const Unit uint64 = 100_000_000

// LeverageUnit is the denominator that scales raw bet leverage to a ratio.
const LeverageUnit int64 = 5040

// Order is an open exchange offer of GiveAsset for GetAsset.
type Order struct {
	TxHash        string `json:"tx_hash"`
	Source        string `json:"source"`
	GiveAsset     string `json:"give_asset"`
	GiveQuantity  uint64 `json:"give_quantity"`
	GiveRemaining uint64 `json:"give_remaining"`
	GetAsset      string `json:"get_asset"`
	GetQuantity   uint64 `json:"get_quantity"`
	GetRemaining  uint64 `json:"get_remaining"`
	FeeRequired   uint64 `json:"fee_required"`
	FeeProvided   uint64 `json:"fee_provided"`
	ExpireIndex   uint64 `json:"expire_index"`
	Status        string `json:"status"`
}

// Bet types as encoded on the wire.
const (
	BetTypeBullCFD = iota
	BetTypeBearCFD
	BetTypeEqual
	BetTypeNotEqual
)

// BetTypeName maps the wire bet type to its display name.
var BetTypeName = map[int]string{
	BetTypeBullCFD:  "BullCFD",
	BetTypeBearCFD:  "BearCFD",
	BetTypeEqual:    "Equal",
	BetTypeNotEqual: "NotEqual",
}

// Bet is an open wager against a feed.
type Bet struct {
	TxHash               string  `json:"tx_hash"`
	Source               string  `json:"source"`
	FeedAddress          string  `json:"feed_address"`
	BetType              int     `json:"bet_type"`
	Deadline             int64   `json:"deadline"`
	WagerQuantity        uint64  `json:"wager_quantity"`
	WagerRemaining       uint64  `json:"wager_remaining"`
	CounterwagerQuantity uint64  `json:"counterwager_quantity"`
	TargetValue          float64 `json:"target_value"`
	Leverage             int64   `json:"leverage"`
	ExpireIndex          uint64  `json:"expire_index"`
	Status               string  `json:"status"`
}

// FeedEntry is a numeric/textual broadcast published by a feed address.
type FeedEntry struct {
	TxHash         string  `json:"tx_hash"`
	Source         string  `json:"source"`
	Timestamp      int64   `json:"timestamp"`
	Text           string  `json:"text"`
	Value          float64 `json:"value"`
	FeeFractionInt uint64  `json:"fee_fraction_int"`
	Status         string  `json:"status"`
}

// OrderMatch pairs two complementary orders. The two transaction hashes are
// observed from either side of the match, so any identifier derived from them
// must not depend on their order.
type OrderMatch struct {
	Tx0Hash          string `json:"tx0_hash"`
	Tx1Hash          string `json:"tx1_hash"`
	Tx0Address       string `json:"tx0_address"`
	Tx1Address       string `json:"tx1_address"`
	MatchExpireIndex uint64 `json:"match_expire_index"`
	Status           string `json:"status"`
}

// Balance is the holding of one asset by one address.
type Balance struct {
	Address  string `json:"address"`
	Asset    string `json:"asset"`
	Quantity uint64 `json:"quantity"`
}

// Issuance is one issuance event of an asset: creation, inflation, a
// description change or a transfer of ownership.
type Issuance struct {
	TxHash      string `json:"tx_hash"`
	Asset       string `json:"asset"`
	Quantity    uint64 `json:"quantity"`
	Divisible   bool   `json:"divisible"`
	Source      string `json:"source"`
	Issuer      string `json:"issuer"`
	Transfer    bool   `json:"transfer"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Send is one completed transfer of an asset between two addresses.
type Send struct {
	TxHash      string `json:"tx_hash"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Asset       string `json:"asset"`
	Quantity    uint64 `json:"quantity"`
	Status      string `json:"status"`
}
