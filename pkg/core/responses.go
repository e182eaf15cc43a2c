package core

// Price is the current quote for a single instrument.
type Price struct {
	// Instrument is the pair the quote refers to, e.g. "EUR_USD".
	Instrument string `json:"instrument"`
	// Time is when the quote was generated.
	Time Timestamp `json:"time"`
	// Bid is the price the broker buys at.
	Bid Decimal `json:"bid"`
	// Ask is the price the broker sells at.
	Ask Decimal `json:"ask"`
	// Status is set to "halted" when the instrument is not tradeable.
	Status string `json:"status,omitempty"`
}

// Account is the state of a broker account, including margin figures.
type Account struct {
	AccountID       int64   `json:"accountId"`
	AccountName     string  `json:"accountName"`
	Balance         Decimal `json:"balance"`
	UnrealizedPL    Decimal `json:"unrealizedPl"`
	RealizedPL      Decimal `json:"realizedPl"`
	MarginUsed      Decimal `json:"marginUsed"`
	MarginAvail     Decimal `json:"marginAvail"`
	MarginRate      Decimal `json:"marginRate"`
	OpenTrades      int     `json:"openTrades"`
	OpenOrders      int     `json:"openOrders"`
	AccountCurrency string  `json:"accountCurrency"`
}

// Order is a pending order as reported by the broker.
type Order struct {
	ID           int64     `json:"id"`
	Instrument   string    `json:"instrument"`
	Units        int       `json:"units"`
	Side         Side      `json:"side"`
	Type         OrderType `json:"type"`
	Time         Timestamp `json:"time"`
	Price        Decimal   `json:"price"`
	TakeProfit   Decimal   `json:"takeProfit"`
	StopLoss     Decimal   `json:"stopLoss"`
	Expiry       Timestamp `json:"expiry"`
	UpperBound   Decimal   `json:"upperBound"`
	LowerBound   Decimal   `json:"lowerBound"`
	TrailingStop Decimal   `json:"trailingStop"`
}

// OrderOpened describes the pending order created by a non-market order
// submission.
type OrderOpened struct {
	ID           int64     `json:"id"`
	Units        int       `json:"units"`
	Side         Side      `json:"side"`
	TakeProfit   Decimal   `json:"takeProfit"`
	StopLoss     Decimal   `json:"stopLoss"`
	Expiry       Timestamp `json:"expiry"`
	UpperBound   Decimal   `json:"upperBound"`
	LowerBound   Decimal   `json:"lowerBound"`
	TrailingStop Decimal   `json:"trailingStop"`
}

// TradeOpened describes the trade created by a filled market order.
type TradeOpened struct {
	ID           int64   `json:"id"`
	Units        int     `json:"units"`
	Side         Side    `json:"side"`
	TakeProfit   Decimal `json:"takeProfit"`
	StopLoss     Decimal `json:"stopLoss"`
	TrailingStop Decimal `json:"trailingStop"`
}

// OrderResult is the broker's response to an order submission. Market orders
// that fill immediately populate TradeOpened; resting orders populate
// OrderOpened.
type OrderResult struct {
	Instrument  string       `json:"instrument"`
	Time        Timestamp    `json:"time"`
	Price       Decimal      `json:"price"`
	OrderOpened *OrderOpened `json:"orderOpened,omitempty"`
	TradeOpened *TradeOpened `json:"tradeOpened,omitempty"`
}

// OrderCancelled is the broker's response to closing a pending order.
type OrderCancelled struct {
	ID         int64     `json:"id"`
	Instrument string    `json:"instrument"`
	Units      int       `json:"units"`
	Side       Side      `json:"side"`
	Price      Decimal   `json:"price"`
	Time       Timestamp `json:"time"`
}

// Trade is an open trade as reported by the broker.
type Trade struct {
	ID           int64     `json:"id"`
	Units        int       `json:"units"`
	Side         Side      `json:"side"`
	Instrument   string    `json:"instrument"`
	Time         Timestamp `json:"time"`
	Price        Decimal   `json:"price"`
	TakeProfit   Decimal   `json:"takeProfit"`
	StopLoss     Decimal   `json:"stopLoss"`
	TrailingStop Decimal   `json:"trailingStop"`
	// TrailingAmount is the current trailing stop distance in pips.
	TrailingAmount Decimal `json:"trailingAmount"`
}

// TradeClosed is the broker's response to closing an open trade.
type TradeClosed struct {
	ID         int64     `json:"id"`
	Price      Decimal   `json:"price"`
	Instrument string    `json:"instrument"`
	Profit     Decimal   `json:"profit"`
	Side       Side      `json:"side"`
	Time       Timestamp `json:"time"`
}

// Position is the aggregate exposure for a single instrument.
type Position struct {
	Instrument string  `json:"instrument"`
	Units      int     `json:"units"`
	Side       Side    `json:"side"`
	AvgPrice   Decimal `json:"avgPrice"`
}

// Transaction is an immutable record of an account event. Type carries the
// broker's event vocabulary (order created, filled, cancelled, interest,
// and so on) verbatim.
type Transaction struct {
	ID         int64     `json:"id"`
	AccountID  int64     `json:"accountId"`
	Type       string    `json:"type"`
	Instrument string    `json:"instrument,omitempty"`
	Units      int       `json:"units,omitempty"`
	Side       Side      `json:"side,omitempty"`
	Time       Timestamp `json:"time"`
	Price      Decimal   `json:"price,omitempty"`
	Balance    Decimal   `json:"balance,omitempty"`
	Interest   Decimal   `json:"interest,omitempty"`
	PL         Decimal   `json:"pl,omitempty"`
}
