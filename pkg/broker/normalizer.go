package broker

import (
	"fmt"

	"github.com/bytedance/sonic"
	"resty.dev/v3"

	"fxwire/pkg/core"
)

// List envelopes as the v1 API wraps them. The element shapes themselves map
// the payload verbatim, so no per-field translation is needed beyond the
// scalar wire types in core.
type pricesEnvelope struct {
	Prices []core.Price `json:"prices"`
}

type ordersEnvelope struct {
	Orders []core.Order `json:"orders"`
}

type tradesEnvelope struct {
	Trades []core.Trade `json:"trades"`
}

type positionsEnvelope struct {
	Positions []core.Position `json:"positions"`
}

type transactionsEnvelope struct {
	Transactions []core.Transaction `json:"transactions"`
}

// apiErrorBody is the structured error the broker returns on 4xx/5xx.
type apiErrorBody struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"moreInfo"`
}

// parseAPIError decodes a broker failure response. When the body is not the
// structured error shape, the HTTP status alone drives classification and the
// raw body is preserved.
func parseAPIError(resp *resty.Response) *core.APIError {
	body := resp.Bytes()

	var errBody apiErrorBody
	if err := sonic.Unmarshal(body, &errBody); err == nil && errBody.Message != "" {
		return core.NewBrokerError(resp.StatusCode(), errBody.Code, errBody.Message, errBody.MoreInfo, body)
	}

	return core.NewBrokerError(resp.StatusCode(), 0, fmt.Sprintf("HTTP error: %s", resp.Status()), "", body)
}
