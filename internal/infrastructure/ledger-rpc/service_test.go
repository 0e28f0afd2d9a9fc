package ledgerrpc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	ledgerrpc "github.com/tokenparty/tparty-client/internal/infrastructure/ledger-rpc"
)

func newLedgerServer(
	t *testing.T, results map[string]interface{},
) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				ID     string                 `json:"id"`
				Method string                 `json:"method"`
				Params map[string]interface{} `json:"params"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotEmpty(t, req.ID)

			result, ok := results[req.Method]
			if !ok {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]interface{}{
						"code": -32601, "message": "unknown method",
					},
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"result": result})
		},
	))
}

func TestGetOrders(t *testing.T) {
	srv := newLedgerServer(t, map[string]interface{}{
		"get_orders": []map[string]interface{}{
			{
				"tx_hash":       "aa",
				"give_asset":    "XTP",
				"give_quantity": 100,
				"get_asset":     "BTC",
				"get_quantity":  50,
				"expire_index":  1010,
				"status":        "open",
			},
		},
	})
	defer srv.Close()

	svc := ledgerrpc.NewService(srv.URL)
	orders, err := svc.GetOrders(context.Background(), "open")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "aa", orders[0].TxHash)
	require.Equal(t, uint64(100), orders[0].GiveQuantity)
	require.Equal(t, "open", orders[0].Status)
}

func TestLastBlockIndex(t *testing.T) {
	srv := newLedgerServer(t, map[string]interface{}{
		"get_running_info": map[string]interface{}{
			"last_block": map[string]interface{}{"block_index": 427000},
		},
	})
	defer srv.Close()

	svc := ledgerrpc.NewService(srv.URL)
	height, err := svc.LastBlockIndex(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(427000), height)
}

func TestLastBlockIndexDefaultsToZero(t *testing.T) {
	srv := newLedgerServer(t, map[string]interface{}{
		"get_running_info": map[string]interface{}{"last_block": nil},
	})
	defer srv.Close()

	svc := ledgerrpc.NewService(srv.URL)
	height, err := svc.LastBlockIndex(context.Background())
	require.NoError(t, err)
	require.Zero(t, height)
}

func TestGetIssuances(t *testing.T) {
	srv := newLedgerServer(t, map[string]interface{}{
		"get_issuances": []map[string]interface{}{
			{
				"tx_hash":     "i0",
				"asset":       "GOLD",
				"quantity":    100_000_000,
				"divisible":   true,
				"issuer":      "1Alice",
				"description": "gold backed token",
				"status":      "valid",
			},
			{
				"tx_hash":   "i1",
				"asset":     "GOLD",
				"quantity":  50_000_000,
				"divisible": true,
				"issuer":    "1Bob",
				"transfer":  true,
				"status":    "valid",
			},
		},
	})
	defer srv.Close()

	svc := ledgerrpc.NewService(srv.URL)
	issuances, err := svc.GetIssuances(context.Background(), "GOLD")
	require.NoError(t, err)
	require.Len(t, issuances, 2)
	require.Equal(t, "1Alice", issuances[0].Issuer)
	require.Equal(t, uint64(100_000_000), issuances[0].Quantity)
	require.True(t, issuances[1].Transfer)
}

func TestGetSends(t *testing.T) {
	srv := newLedgerServer(t, map[string]interface{}{
		"get_sends": []map[string]interface{}{
			{
				"tx_hash":     "s0",
				"source":      "1Alice",
				"destination": "1Bob",
				"asset":       "GOLD",
				"quantity":    25_000_000,
				"status":      "valid",
			},
		},
	})
	defer srv.Close()

	svc := ledgerrpc.NewService(srv.URL)
	sends, err := svc.GetSends(context.Background(), "GOLD")
	require.NoError(t, err)
	require.Len(t, sends, 1)
	require.Equal(t, "1Bob", sends[0].Destination)
	require.Equal(t, uint64(25_000_000), sends[0].Quantity)
}

func TestComposeSurfacesServerError(t *testing.T) {
	srv := newLedgerServer(t, map[string]interface{}{})
	defer srv.Close()

	svc := ledgerrpc.NewService(srv.URL)
	_, err := svc.Compose(context.Background(), "send", map[string]interface{}{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown method")
}

func TestCompose(t *testing.T) {
	srv := newLedgerServer(t, map[string]interface{}{
		"create_send": "0100deadbeef",
	})
	defer srv.Close()

	svc := ledgerrpc.NewService(srv.URL)
	unsignedHex, err := svc.Compose(context.Background(), "send", map[string]interface{}{
		"source": "1Alice", "destination": "1Bob",
	})
	require.NoError(t, err)
	require.Equal(t, "0100deadbeef", unsignedHex)
}
