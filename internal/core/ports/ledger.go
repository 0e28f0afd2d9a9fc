package ports

import (
	"context"

	"github.com/tokenparty/tparty-client/internal/core/domain"
)

// LedgerQuery is the boundary to the remote ledger server. Query results are
// trusted as-is; transport failures are hard failures for the calling
// operation.
type LedgerQuery interface {
	// LastBlockIndex returns the height of the last indexed block, 0 when
	// nothing has been indexed yet.
	LastBlockIndex(ctx context.Context) (uint64, error)
	GetOrders(ctx context.Context, status string) ([]domain.Order, error)
	GetBets(ctx context.Context, status string) ([]domain.Bet, error)
	// GetBroadcasts returns feed entries in descending timestamp order.
	GetBroadcasts(ctx context.Context, status string) ([]domain.FeedEntry, error)
	// GetOrderMatchesByAddresses returns matches where any of the given
	// addresses appears on either side.
	GetOrderMatchesByAddresses(
		ctx context.Context, addresses []string, status string,
	) ([]domain.OrderMatch, error)
	GetBalances(ctx context.Context, address string) ([]domain.Balance, error)
	// GetIssuances returns the valid issuance history of an asset, oldest
	// first.
	GetIssuances(ctx context.Context, asset string) ([]domain.Issuance, error)
	// GetBalancesByAsset returns every address holding the asset.
	GetBalancesByAsset(ctx context.Context, asset string) ([]domain.Balance, error)
	GetSends(ctx context.Context, asset string) ([]domain.Send, error)
	// Compose asks the server to build the unsigned serialization of the
	// given message type.
	Compose(
		ctx context.Context, message string, params map[string]interface{},
	) (string, error)
	GetRunningInfo(ctx context.Context) (map[string]interface{}, error)
}
