package broker

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"resty.dev/v3"

	"fxwire/pkg/core"
)

// Count bounds for the list endpoints. Requests above the maximum are
// silently clamped, never rejected.
const (
	defaultCount = 50
	maxCount     = 500
)

// Protocol builds HTTP requests against the broker's fixed v1 path templates
// and parses responses into typed shapes. All account-scoped paths embed the
// account identifier the protocol was constructed with.
type Protocol struct {
	accountID string
}

// NewProtocol creates a Protocol scoped to the given account.
func NewProtocol(accountID string) *Protocol {
	return &Protocol{accountID: accountID}
}

// Version returns the broker API version string.
func (p *Protocol) Version() string {
	return "1"
}

// SupportedOperations returns the list of operations this protocol supports.
func (p *Protocol) SupportedOperations() []core.Operation {
	return []core.Operation{
		core.OpGetPrices,
		core.OpGetAccount,
		core.OpCreateOrder,
		core.OpListOrders,
		core.OpGetOrder,
		core.OpCloseOrder,
		core.OpListTrades,
		core.OpGetTrade,
		core.OpCloseTrade,
		core.OpListPositions,
		core.OpListTransactions,
		core.OpGetTransaction,
	}
}

// BuildRequest constructs the HTTP request for the given operation.
// It validates required parameters and applies the count clamp policy on the
// list endpoints.
func (p *Protocol) BuildRequest(ctx context.Context, op core.Operation, params core.Params) (*core.Request, error) {
	switch op {
	case core.OpGetPrices:
		return p.buildGetPricesRequest(params)
	case core.OpGetAccount:
		return p.buildGetAccountRequest(params)
	case core.OpCreateOrder:
		return p.buildCreateOrderRequest(params)
	case core.OpListOrders:
		return p.buildListRequest("orders", params)
	case core.OpGetOrder:
		return p.buildItemRequest(http.MethodGet, "orders", "order_id", params)
	case core.OpCloseOrder:
		return p.buildItemRequest(http.MethodDelete, "orders", "order_id", params)
	case core.OpListTrades:
		return p.buildListRequest("trades", params)
	case core.OpGetTrade:
		return p.buildItemRequest(http.MethodGet, "trades", "trade_id", params)
	case core.OpCloseTrade:
		return p.buildItemRequest(http.MethodDelete, "trades", "trade_id", params)
	case core.OpListPositions:
		return p.buildListPositionsRequest(params)
	case core.OpListTransactions:
		return p.buildListRequest("transactions", params)
	case core.OpGetTransaction:
		return p.buildItemRequest(http.MethodGet, "transactions", "transaction_id", params)
	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
}

// ParseResponse parses an HTTP response into the typed shape for the
// operation. Broker failure responses (HTTP 4xx/5xx with a structured error
// body) are decoded into *core.APIError with the body carried through.
func (p *Protocol) ParseResponse(op core.Operation, resp *resty.Response) (any, error) {
	if resp == nil {
		return nil, fmt.Errorf("nil response")
	}

	if resp.StatusCode() >= 400 {
		return nil, parseAPIError(resp)
	}

	body := resp.Bytes()

	switch op {
	case core.OpGetPrices:
		var env pricesEnvelope
		if err := sonic.Unmarshal(body, &env); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal prices: %w", err))
		}
		return env.Prices, nil

	case core.OpGetAccount:
		var account core.Account
		if err := sonic.Unmarshal(body, &account); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal account: %w", err))
		}
		return &account, nil

	case core.OpCreateOrder:
		var result core.OrderResult
		if err := sonic.Unmarshal(body, &result); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal order result: %w", err))
		}
		return &result, nil

	case core.OpListOrders:
		var env ordersEnvelope
		if err := sonic.Unmarshal(body, &env); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal orders: %w", err))
		}
		return env.Orders, nil

	case core.OpGetOrder:
		var order core.Order
		if err := sonic.Unmarshal(body, &order); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal order: %w", err))
		}
		return &order, nil

	case core.OpCloseOrder:
		var cancelled core.OrderCancelled
		if err := sonic.Unmarshal(body, &cancelled); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal cancelled order: %w", err))
		}
		return &cancelled, nil

	case core.OpListTrades:
		var env tradesEnvelope
		if err := sonic.Unmarshal(body, &env); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal trades: %w", err))
		}
		return env.Trades, nil

	case core.OpGetTrade:
		var trade core.Trade
		if err := sonic.Unmarshal(body, &trade); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal trade: %w", err))
		}
		return &trade, nil

	case core.OpCloseTrade:
		var closed core.TradeClosed
		if err := sonic.Unmarshal(body, &closed); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal closed trade: %w", err))
		}
		return &closed, nil

	case core.OpListPositions:
		// The list endpoint wraps positions in an envelope; the
		// single-instrument variant returns a bare position object.
		var env positionsEnvelope
		if err := sonic.Unmarshal(body, &env); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal positions: %w", err))
		}
		if env.Positions != nil {
			return env.Positions, nil
		}
		var position core.Position
		if err := sonic.Unmarshal(body, &position); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal position: %w", err))
		}
		return []core.Position{position}, nil

	case core.OpListTransactions:
		var env transactionsEnvelope
		if err := sonic.Unmarshal(body, &env); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal transactions: %w", err))
		}
		return env.Transactions, nil

	case core.OpGetTransaction:
		var transaction core.Transaction
		if err := sonic.Unmarshal(body, &transaction); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal transaction: %w", err))
		}
		return &transaction, nil

	default:
		var result core.Params
		if err := sonic.Unmarshal(body, &result); err != nil {
			return nil, core.NewDecodeError(fmt.Errorf("unmarshal response: %w", err))
		}
		return result, nil
	}
}

func (p *Protocol) buildGetPricesRequest(params core.Params) (*core.Request, error) {
	instruments, err := getRequiredStringParam(params, "instruments")
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodGet, "/v1/prices")
	req.SetQuery("instruments", instruments)

	return req, nil
}

func (p *Protocol) buildGetAccountRequest(_ core.Params) (*core.Request, error) {
	return core.NewRequest(http.MethodGet, "/v1/accounts/"+p.accountID), nil
}

func (p *Protocol) buildCreateOrderRequest(params core.Params) (*core.Request, error) {
	for _, key := range []string{"instrument", "units", "side", "type"} {
		if _, err := getRequiredStringParam(params, key); err != nil {
			return nil, err
		}
	}

	req := core.NewRequest(http.MethodPost, fmt.Sprintf("/v1/accounts/%s/orders", p.accountID))
	for k, v := range params {
		req.SetForm(k, fmt.Sprint(v))
	}

	return req, nil
}

func (p *Protocol) buildListRequest(collection string, params core.Params) (*core.Request, error) {
	req := core.NewRequest(http.MethodGet, fmt.Sprintf("/v1/accounts/%s/%s", p.accountID, collection))
	req.SetQuery("count", strconv.Itoa(clampCount(params)))

	if instrument, ok := params["instrument"].(string); ok && instrument != "" {
		req.SetQuery("instrument", instrument)
	}

	return req, nil
}

func (p *Protocol) buildItemRequest(method, collection, idKey string, params core.Params) (*core.Request, error) {
	id, err := getRequiredStringParam(params, idKey)
	if err != nil {
		return nil, err
	}

	return core.NewRequest(method, fmt.Sprintf("/v1/accounts/%s/%s/%s", p.accountID, collection, id)), nil
}

func (p *Protocol) buildListPositionsRequest(params core.Params) (*core.Request, error) {
	// The instrument segment is appended even when empty, giving the
	// trailing-slash list URL the v1 API expects.
	instrument, _ := params["instrument"].(string)
	path := fmt.Sprintf("/v1/accounts/%s/positions/%s", p.accountID, instrument)

	return core.NewRequest(http.MethodGet, path), nil
}

// clampCount resolves the count parameter for list endpoints: default when
// absent or non-positive, silently capped at the maximum.
func clampCount(params core.Params) int {
	count := getIntParamWithDefault(params, "count", defaultCount)
	if count <= 0 {
		count = defaultCount
	}
	if count > maxCount {
		count = maxCount
	}
	return count
}

func getRequiredStringParam(params core.Params, key string) (string, error) {
	val, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter: %s", key)
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("parameter %s must be a string", key)
	}

	if str == "" {
		return "", fmt.Errorf("parameter %s cannot be empty", key)
	}

	return str, nil
}

func getIntParamWithDefault(params core.Params, key string, def int) int {
	if val, ok := params[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		case string:
			if i, err := strconv.Atoi(v); err == nil {
				return i
			}
		}
	}
	return def
}
