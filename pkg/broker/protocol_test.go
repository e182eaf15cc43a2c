package broker

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxwire/pkg/core"
)

func TestProtocol_Version(t *testing.T) {
	assert.Equal(t, "1", NewProtocol("12345").Version())
}

func TestProtocol_SupportedOperations(t *testing.T) {
	ops := NewProtocol("12345").SupportedOperations()
	assert.Len(t, ops, 12)
}

func TestProtocol_BuildRequest_GetPrices(t *testing.T) {
	p := NewProtocol("12345")

	req, err := p.BuildRequest(context.Background(), core.OpGetPrices, core.Params{
		"instruments": "EUR_USD,USD_JPY",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/v1/prices", req.Path)
	assert.Equal(t, "EUR_USD,USD_JPY", req.Query["instruments"])
}

func TestProtocol_BuildRequest_GetPrices_MissingInstruments(t *testing.T) {
	p := NewProtocol("12345")

	_, err := p.BuildRequest(context.Background(), core.OpGetPrices, core.Params{})
	assert.Error(t, err)

	_, err = p.BuildRequest(context.Background(), core.OpGetPrices, core.Params{"instruments": ""})
	assert.Error(t, err)
}

func TestProtocol_BuildRequest_GetAccount(t *testing.T) {
	p := NewProtocol("12345")

	req, err := p.BuildRequest(context.Background(), core.OpGetAccount, core.Params{})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/v1/accounts/12345", req.Path)
}

func TestProtocol_BuildRequest_CreateOrder(t *testing.T) {
	p := NewProtocol("12345")

	req, err := p.BuildRequest(context.Background(), core.OpCreateOrder, core.Params{
		"instrument": "EUR_USD",
		"units":      "100",
		"side":       "buy",
		"type":       "market",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/accounts/12345/orders", req.Path)
	assert.Equal(t, "EUR_USD", req.Form["instrument"])
	assert.Equal(t, "100", req.Form["units"])
	assert.Equal(t, "buy", req.Form["side"])
	assert.Equal(t, "market", req.Form["type"])
}

func TestProtocol_BuildRequest_CreateOrder_MissingParams(t *testing.T) {
	p := NewProtocol("12345")

	tests := []struct {
		name   string
		params core.Params
	}{
		{"missing_instrument", core.Params{"units": "1", "side": "buy", "type": "market"}},
		{"missing_units", core.Params{"instrument": "EUR_USD", "side": "buy", "type": "market"}},
		{"missing_side", core.Params{"instrument": "EUR_USD", "units": "1", "type": "market"}},
		{"missing_type", core.Params{"instrument": "EUR_USD", "units": "1", "side": "buy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.BuildRequest(context.Background(), core.OpCreateOrder, tt.params)
			assert.Error(t, err)
		})
	}
}

func TestProtocol_BuildRequest_ListOrders_CountClamp(t *testing.T) {
	p := NewProtocol("12345")

	tests := []struct {
		name   string
		params core.Params
		want   string
	}{
		{"absent_uses_default", core.Params{}, "50"},
		{"zero_uses_default", core.Params{"count": 0}, "50"},
		{"negative_uses_default", core.Params{"count": -3}, "50"},
		{"passthrough", core.Params{"count": 120}, "120"},
		{"at_maximum", core.Params{"count": 500}, "500"},
		{"above_maximum_clamped", core.Params{"count": 600}, "500"},
		{"far_above_maximum_clamped", core.Params{"count": 100000}, "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := p.BuildRequest(context.Background(), core.OpListOrders, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Query["count"])
		})
	}
}

func TestProtocol_BuildRequest_ListOrders_InstrumentFilter(t *testing.T) {
	p := NewProtocol("12345")

	req, err := p.BuildRequest(context.Background(), core.OpListOrders, core.Params{
		"instrument": "EUR_USD",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/accounts/12345/orders", req.Path)
	assert.Equal(t, "EUR_USD", req.Query["instrument"])

	req, err = p.BuildRequest(context.Background(), core.OpListOrders, core.Params{})
	require.NoError(t, err)
	assert.NotContains(t, req.Query, "instrument")
}

func TestProtocol_BuildRequest_ItemPaths(t *testing.T) {
	p := NewProtocol("12345")

	tests := []struct {
		name       string
		op         core.Operation
		params     core.Params
		wantMethod string
		wantPath   string
	}{
		{"get_order", core.OpGetOrder, core.Params{"order_id": "43211"}, http.MethodGet, "/v1/accounts/12345/orders/43211"},
		{"close_order", core.OpCloseOrder, core.Params{"order_id": "43211"}, http.MethodDelete, "/v1/accounts/12345/orders/43211"},
		{"get_trade", core.OpGetTrade, core.Params{"trade_id": "54332"}, http.MethodGet, "/v1/accounts/12345/trades/54332"},
		{"close_trade", core.OpCloseTrade, core.Params{"trade_id": "54332"}, http.MethodDelete, "/v1/accounts/12345/trades/54332"},
		{"get_transaction", core.OpGetTransaction, core.Params{"transaction_id": "175517330"}, http.MethodGet, "/v1/accounts/12345/transactions/175517330"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := p.BuildRequest(context.Background(), tt.op, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, tt.wantPath, req.Path)
		})
	}
}

func TestProtocol_BuildRequest_ItemPaths_MissingID(t *testing.T) {
	p := NewProtocol("12345")

	for _, op := range []core.Operation{core.OpGetOrder, core.OpCloseOrder, core.OpGetTrade, core.OpCloseTrade, core.OpGetTransaction} {
		_, err := p.BuildRequest(context.Background(), op, core.Params{})
		assert.Error(t, err, "operation %s", op)
	}
}

func TestProtocol_BuildRequest_CloseTrade_UsesSuppliedID(t *testing.T) {
	p := NewProtocol("12345")

	first, err := p.BuildRequest(context.Background(), core.OpCloseTrade, core.Params{"trade_id": "1111"})
	require.NoError(t, err)
	assert.Equal(t, "/v1/accounts/12345/trades/1111", first.Path)

	// A second close must be built from its own identifier, never a stale one.
	second, err := p.BuildRequest(context.Background(), core.OpCloseTrade, core.Params{"trade_id": "2222"})
	require.NoError(t, err)
	assert.Equal(t, "/v1/accounts/12345/trades/2222", second.Path)
}

func TestProtocol_BuildRequest_ListPositions(t *testing.T) {
	p := NewProtocol("12345")

	req, err := p.BuildRequest(context.Background(), core.OpListPositions, core.Params{})
	require.NoError(t, err)
	assert.Equal(t, "/v1/accounts/12345/positions/", req.Path)

	req, err = p.BuildRequest(context.Background(), core.OpListPositions, core.Params{"instrument": "EUR_USD"})
	require.NoError(t, err)
	assert.Equal(t, "/v1/accounts/12345/positions/EUR_USD", req.Path)
}

func TestProtocol_BuildRequest_ListTransactions(t *testing.T) {
	p := NewProtocol("12345")

	req, err := p.BuildRequest(context.Background(), core.OpListTransactions, core.Params{
		"count":      700,
		"instrument": "USD_JPY",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/accounts/12345/transactions", req.Path)
	assert.Equal(t, "500", req.Query["count"])
	assert.Equal(t, "USD_JPY", req.Query["instrument"])
}

func TestProtocol_BuildRequest_UnsupportedOperation(t *testing.T) {
	p := NewProtocol("12345")

	_, err := p.BuildRequest(context.Background(), core.Operation(99), core.Params{})
	assert.Error(t, err)
}

func TestClampCount(t *testing.T) {
	assert.Equal(t, 50, clampCount(core.Params{}))
	assert.Equal(t, 50, clampCount(core.Params{"count": "garbage"}))
	assert.Equal(t, 250, clampCount(core.Params{"count": "250"}))
	assert.Equal(t, 500, clampCount(core.Params{"count": int64(501)}))
}
