package walletrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenparty/tparty-client/internal/core/ports"
	"github.com/tokenparty/tparty-client/pkg/httputil"
)

type service struct {
	rpcURL string
}

// NewService returns a client for the wallet backend JSON-RPC endpoint at
// rpcURL (credentials embedded in the URL userinfo). The same backend signs
// with managed keys and relays raw transactions, so the service implements
// both capabilities.
func NewService(rpcURL string) (ports.WalletCapability, ports.NetworkSubmission) {
	svc := &service{rpcURL}
	return svc, svc
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (s *service) call(method string, params []interface{}) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"jsonrpc": "1.0",
		"id":      uuid.NewString(),
		"method":  method,
		"params":  params,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{"Content-Type": "application/json"}
	status, resp, err := httputil.NewHTTPRequest("POST", s.rpcURL, string(body), headers)
	if err != nil {
		return nil, fmt.Errorf("wallet rpc %s: %w", method, err)
	}

	var res rpcResponse
	if err := json.Unmarshal([]byte(resp), &res); err != nil {
		if status != http.StatusOK {
			return nil, fmt.Errorf("wallet rpc %s: %s", method, resp)
		}
		return nil, fmt.Errorf("wallet rpc %s: invalid response: %w", method, err)
	}
	if res.Error != nil {
		return nil, fmt.Errorf("wallet rpc %s: %s", method, res.Error.Message)
	}
	return res.Result, nil
}

func (s *service) IsMine(_ context.Context, address string) (bool, error) {
	raw, err := s.call("validateaddress", []interface{}{address})
	if err != nil {
		return false, err
	}

	var info struct {
		IsValid bool `json:"isvalid"`
		IsMine  bool `json:"ismine"`
	}
	if err := json.Unmarshal(raw, &info); err != nil {
		return false, fmt.Errorf("parsing validateaddress: %w", err)
	}
	return info.IsValid && info.IsMine, nil
}

func (s *service) SignTransaction(
	_ context.Context, unsignedHex string,
) (string, error) {
	raw, err := s.call("signrawtransaction", []interface{}{unsignedHex})
	if err != nil {
		return "", err
	}

	var signed struct {
		Hex      string `json:"hex"`
		Complete bool   `json:"complete"`
	}
	if err := json.Unmarshal(raw, &signed); err != nil {
		return "", fmt.Errorf("parsing signrawtransaction: %w", err)
	}
	if !signed.Complete {
		return "", fmt.Errorf("wallet could not sign all transaction inputs")
	}
	return signed.Hex, nil
}

func (s *service) Balances(_ context.Context) ([]ports.CoinBalance, error) {
	raw, err := s.call("listunspent", []interface{}{})
	if err != nil {
		return nil, err
	}

	unspents := []struct {
		Address string      `json:"address"`
		Amount  json.Number `json:"amount"`
	}{}
	if err := json.Unmarshal(raw, &unspents); err != nil {
		return nil, fmt.Errorf("parsing listunspent: %w", err)
	}

	totals := map[string]decimal.Decimal{}
	order := []string{}
	for _, u := range unspents {
		amount, err := decimal.NewFromString(u.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("parsing unspent amount: %w", err)
		}
		if _, ok := totals[u.Address]; !ok {
			order = append(order, u.Address)
		}
		totals[u.Address] = totals[u.Address].Add(amount)
	}

	balances := make([]ports.CoinBalance, 0, len(order))
	for _, addr := range order {
		balances = append(balances, ports.CoinBalance{
			Address: addr,
			Amount:  totals[addr],
		})
	}
	return balances, nil
}

func (s *service) BroadcastTransaction(
	_ context.Context, signedHex string,
) (string, error) {
	raw, err := s.call("sendrawtransaction", []interface{}{signedHex})
	if err != nil {
		return "", err
	}

	var txid string
	if err := json.Unmarshal(raw, &txid); err != nil {
		return "", fmt.Errorf("parsing sendrawtransaction: %w", err)
	}
	return txid, nil
}
