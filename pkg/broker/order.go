package broker

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"fxwire/pkg/core"
)

// OrderRequest describes a new order. Instrument, Units, Side and Type are
// always required; Expiry and Price are additionally required for every type
// except market. The remaining fields are optional and omitted from the wire
// when zero.
type OrderRequest struct {
	// Instrument is the pair to trade, e.g. "EUR_USD".
	Instrument string `validate:"required"`
	// Units is the order size.
	Units int `validate:"required,gt=0"`
	// Side is the trade direction.
	Side core.Side
	// Type selects the execution mode.
	Type core.OrderType
	// Expiry is when a resting order lapses. Required for non-market types.
	Expiry time.Time
	// Price is the trigger or limit price. Required for non-market types.
	Price core.Decimal
	// LowerBound is the minimum execution price accepted.
	LowerBound core.Decimal
	// UpperBound is the maximum execution price accepted.
	UpperBound core.Decimal
	// StopLoss closes the resulting trade at the given price.
	StopLoss core.Decimal
	// TakeProfit closes the resulting trade at the given price.
	TakeProfit core.Decimal
	// TrailingStop is a trailing stop distance in pips.
	TrailingStop core.Decimal
}

var validateOrder = validator.New()

// Validate rejects malformed orders before serialization. Failures carry the
// validation error type so callers can distinguish them from broker rejections.
func (r *OrderRequest) Validate() error {
	if err := validateOrder.Struct(r); err != nil {
		return core.NewValidationError(err)
	}

	if r.Type != core.TypeMarket {
		if r.Expiry.IsZero() {
			return core.NewValidationError(fmt.Errorf("expiry is required for %s orders", r.Type))
		}
		if r.Price.IsZero() {
			return core.NewValidationError(fmt.Errorf("price is required for %s orders", r.Type))
		}
	}

	return nil
}

// params flattens the order into the form fields the v1 API expects. Expiry
// is sent as epoch seconds, matching the Unix datetime format the client
// negotiates.
func (r *OrderRequest) params() core.Params {
	params := core.Params{
		"instrument": r.Instrument,
		"units":      strconv.Itoa(r.Units),
		"side":       r.Side.String(),
		"type":       r.Type.String(),
	}

	if r.Type != core.TypeMarket {
		params["expiry"] = strconv.FormatInt(r.Expiry.Unix(), 10)
		params["price"] = r.Price.Text('f')
	}

	if !r.LowerBound.IsZero() {
		params["lowerBound"] = r.LowerBound.Text('f')
	}
	if !r.UpperBound.IsZero() {
		params["upperBound"] = r.UpperBound.Text('f')
	}
	if !r.StopLoss.IsZero() {
		params["stopLoss"] = r.StopLoss.Text('f')
	}
	if !r.TakeProfit.IsZero() {
		params["takeProfit"] = r.TakeProfit.Text('f')
	}
	if !r.TrailingStop.IsZero() {
		params["trailingStop"] = r.TrailingStop.Text('f')
	}

	return params
}
