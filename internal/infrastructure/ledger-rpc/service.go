package ledgerrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"github.com/tokenparty/tparty-client/internal/core/domain"
	"github.com/tokenparty/tparty-client/internal/core/ports"
	"github.com/tokenparty/tparty-client/pkg/circuitbreaker"
	"github.com/tokenparty/tparty-client/pkg/httputil"
	"go.uber.org/ratelimit"
)

// requestsPerSecond caps the pace of calls against the ledger server.
const requestsPerSecond = 10

type service struct {
	rpcURL  string
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// NewService returns a ledger query client for the JSON-RPC endpoint at
// rpcURL (credentials embedded in the URL userinfo).
func NewService(rpcURL string) ports.LedgerQuery {
	return &service{
		rpcURL:  rpcURL,
		cb:      circuitbreaker.NewCircuitBreaker("ledger-rpc"),
		limiter: ratelimit.New(requestsPerSecond),
	}
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (s *service) call(
	method string, params map[string]interface{},
) (json.RawMessage, error) {
	s.limiter.Take()

	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  method,
		"params":  params,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{"Content-Type": "application/json"}
	iRes, err := s.cb.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest(
			"POST", s.rpcURL, string(body), headers,
		)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("%s", resp)
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("ledger rpc %s: %w", method, err)
	}

	var res rpcResponse
	if err := json.Unmarshal([]byte(iRes.(string)), &res); err != nil {
		return nil, fmt.Errorf("ledger rpc %s: invalid response: %w", method, err)
	}
	if res.Error != nil {
		return nil, fmt.Errorf("ledger rpc %s: %s", method, res.Error.Message)
	}
	return res.Result, nil
}

func (s *service) LastBlockIndex(_ context.Context) (uint64, error) {
	info, err := s.runningInfo()
	if err != nil {
		return 0, err
	}
	lastBlock, ok := info["last_block"].(map[string]interface{})
	if !ok {
		return 0, nil
	}
	height, ok := lastBlock["block_index"].(float64)
	if !ok {
		return 0, nil
	}
	return uint64(height), nil
}

func (s *service) GetOrders(
	_ context.Context, status string,
) ([]domain.Order, error) {
	raw, err := s.call("get_orders", map[string]interface{}{"status": status})
	if err != nil {
		return nil, err
	}

	orders := []domain.Order{}
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("parsing orders: %w", err)
	}
	return orders, nil
}

func (s *service) GetBets(
	_ context.Context, status string,
) ([]domain.Bet, error) {
	raw, err := s.call("get_bets", map[string]interface{}{"status": status})
	if err != nil {
		return nil, err
	}

	bets := []domain.Bet{}
	if err := json.Unmarshal(raw, &bets); err != nil {
		return nil, fmt.Errorf("parsing bets: %w", err)
	}
	return bets, nil
}

func (s *service) GetBroadcasts(
	_ context.Context, status string,
) ([]domain.FeedEntry, error) {
	raw, err := s.call("get_broadcasts", map[string]interface{}{
		"status":    status,
		"order_by":  "timestamp",
		"order_dir": "desc",
	})
	if err != nil {
		return nil, err
	}

	feeds := []domain.FeedEntry{}
	if err := json.Unmarshal(raw, &feeds); err != nil {
		return nil, fmt.Errorf("parsing broadcasts: %w", err)
	}
	return feeds, nil
}

func (s *service) GetOrderMatchesByAddresses(
	_ context.Context, addresses []string, status string,
) ([]domain.OrderMatch, error) {
	raw, err := s.call("get_order_matches", map[string]interface{}{
		"filters": []map[string]interface{}{
			{"field": "tx0_address", "op": "IN", "value": addresses},
			{"field": "tx1_address", "op": "IN", "value": addresses},
		},
		"filterop": "OR",
		"status":   status,
	})
	if err != nil {
		return nil, err
	}

	matches := []domain.OrderMatch{}
	if err := json.Unmarshal(raw, &matches); err != nil {
		return nil, fmt.Errorf("parsing order matches: %w", err)
	}
	return matches, nil
}

func (s *service) GetBalances(
	_ context.Context, address string,
) ([]domain.Balance, error) {
	raw, err := s.call("get_balances", map[string]interface{}{
		"filters": []map[string]interface{}{
			{"field": "address", "op": "==", "value": address},
		},
	})
	if err != nil {
		return nil, err
	}

	balances := []domain.Balance{}
	if err := json.Unmarshal(raw, &balances); err != nil {
		return nil, fmt.Errorf("parsing balances: %w", err)
	}
	return balances, nil
}

func (s *service) GetIssuances(
	_ context.Context, asset string,
) ([]domain.Issuance, error) {
	raw, err := s.call("get_issuances", map[string]interface{}{
		"filters": []map[string]interface{}{
			{"field": "asset", "op": "==", "value": asset},
		},
		"status":    "valid",
		"order_by":  "block_index",
		"order_dir": "asc",
	})
	if err != nil {
		return nil, err
	}

	issuances := []domain.Issuance{}
	if err := json.Unmarshal(raw, &issuances); err != nil {
		return nil, fmt.Errorf("parsing issuances: %w", err)
	}
	return issuances, nil
}

func (s *service) GetBalancesByAsset(
	_ context.Context, asset string,
) ([]domain.Balance, error) {
	raw, err := s.call("get_balances", map[string]interface{}{
		"filters": []map[string]interface{}{
			{"field": "asset", "op": "==", "value": asset},
		},
	})
	if err != nil {
		return nil, err
	}

	balances := []domain.Balance{}
	if err := json.Unmarshal(raw, &balances); err != nil {
		return nil, fmt.Errorf("parsing balances: %w", err)
	}
	return balances, nil
}

func (s *service) GetSends(
	_ context.Context, asset string,
) ([]domain.Send, error) {
	raw, err := s.call("get_sends", map[string]interface{}{
		"filters": []map[string]interface{}{
			{"field": "asset", "op": "==", "value": asset},
		},
		"status": "valid",
	})
	if err != nil {
		return nil, err
	}

	sends := []domain.Send{}
	if err := json.Unmarshal(raw, &sends); err != nil {
		return nil, fmt.Errorf("parsing sends: %w", err)
	}
	return sends, nil
}

func (s *service) Compose(
	_ context.Context, message string, params map[string]interface{},
) (string, error) {
	raw, err := s.call("create_"+message, params)
	if err != nil {
		return "", err
	}

	var unsignedHex string
	if err := json.Unmarshal(raw, &unsignedHex); err != nil {
		return "", fmt.Errorf("parsing unsigned transaction: %w", err)
	}
	return unsignedHex, nil
}

func (s *service) GetRunningInfo(
	_ context.Context,
) (map[string]interface{}, error) {
	return s.runningInfo()
}

func (s *service) runningInfo() (map[string]interface{}, error) {
	raw, err := s.call("get_running_info", nil)
	if err != nil {
		return nil, err
	}

	info := map[string]interface{}{}
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("parsing running info: %w", err)
	}
	return info, nil
}
