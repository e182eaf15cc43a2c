package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Decimal is a fixed-point value as carried on the wire. The broker encodes
// prices and monetary amounts as bare JSON numbers; Decimal accepts both
// numbers and numeric strings without any float round trip.
type Decimal struct {
	apd.Decimal
}

// NewDecimal parses a decimal from its string representation.
func NewDecimal(s string) (Decimal, error) {
	var d Decimal
	if _, _, err := apd.BaseContext.SetString(&d.Decimal, s); err != nil {
		return Decimal{}, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

// MustDecimal parses a decimal and panics on failure. For tests and fixtures.
func MustDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalJSON implements json.Marshaler, emitting a bare JSON number.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.Decimal.Text('f')), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts JSON numbers,
// numeric strings and null.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Decimal = apd.Decimal{}
		return nil
	}
	if _, _, err := apd.BaseContext.SetString(&d.Decimal, s); err != nil {
		return fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return nil
}

// Timestamp is a point in time as carried on the wire. With the Unix datetime
// header the broker sends epoch seconds with a fractional part
// ("1453326442.000000"); without it, RFC3339. Both forms decode here.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalJSON implements json.Marshaler, emitting epoch seconds with
// microsecond precision as a string, matching the Unix datetime format.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf(`"%d.%06d"`, t.Unix(), t.Nanosecond()/1000)), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts epoch seconds as a
// string or bare number, RFC3339 strings, and null or empty values.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if sec, err := strconv.ParseFloat(s, 64); err == nil {
		t.Time = time.UnixMicro(int64(sec * 1e6)).UTC()
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// Side represents the direction of an order or trade (buy or sell).
type Side int

// Side constants define the direction of a trade.
const (
	// SideBuy indicates a long order or trade.
	SideBuy Side = iota
	// SideSell indicates a short order or trade.
	SideSell
)

// String returns the wire representation of the side ("buy" or "sell").
func (s Side) String() string {
	return [...]string{"buy", "sell"}[s]
}

// MarshalJSON implements json.Marshaler for Side.
func (s Side) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Side.
// It accepts both lowercase and uppercase forms.
func (s *Side) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"buy"`, `"BUY"`:
		*s = SideBuy
	case `"sell"`, `"SELL"`:
		*s = SideSell
	}
	return nil
}

// OrderType represents how an order executes.
type OrderType int

// Order type constants define the supported execution modes.
const (
	// TypeMarket executes immediately at the current price.
	TypeMarket OrderType = iota
	// TypeLimit executes at the given price or better.
	TypeLimit
	// TypeStop triggers once the market reaches the given price.
	TypeStop
	// TypeMarketIfTouched becomes a market order once the price is touched.
	TypeMarketIfTouched
)

// String returns the wire representation of the order type.
func (t OrderType) String() string {
	return [...]string{"market", "limit", "stop", "marketIfTouched"}[t]
}

// MarshalJSON implements json.Marshaler for OrderType.
func (t OrderType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderType.
func (t *OrderType) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"market"`, `"MARKET"`:
		*t = TypeMarket
	case `"limit"`, `"LIMIT"`:
		*t = TypeLimit
	case `"stop"`, `"STOP"`:
		*t = TypeStop
	case `"marketIfTouched"`, `"MARKET_IF_TOUCHED"`:
		*t = TypeMarketIfTouched
	}
	return nil
}
