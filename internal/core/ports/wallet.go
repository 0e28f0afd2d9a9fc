package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// CoinBalance is the chain coin balance of a single wallet address.
type CoinBalance struct {
	Address string
	Amount  decimal.Decimal
}

// WalletCapability is the boundary to the wallet backend holding managed keys.
type WalletCapability interface {
	// IsMine reports whether the private key of the address lives in the
	// managed wallet.
	IsMine(ctx context.Context, address string) (bool, error)
	// SignTransaction signs the unsigned serialization with the wallet's own
	// keys and fails if the source address is unknown to it.
	SignTransaction(ctx context.Context, unsignedHex string) (string, error)
	Balances(ctx context.Context) ([]CoinBalance, error)
}

// NetworkSubmission relays signed raw transactions to the network.
type NetworkSubmission interface {
	BroadcastTransaction(ctx context.Context, signedHex string) (string, error)
}
