package core

// Operation represents a type of action that can be performed against the
// broker API.
type Operation int

// Operation constants define all supported broker operations.
const (
	// OpGetPrices retrieves current quotes for a set of instruments.
	OpGetPrices Operation = iota
	// OpGetAccount retrieves account state and margin figures.
	OpGetAccount
	// OpCreateOrder submits a new order.
	OpCreateOrder
	// OpListOrders retrieves pending orders for the account.
	OpListOrders
	// OpGetOrder retrieves a single order by identifier.
	OpGetOrder
	// OpCloseOrder cancels a pending order.
	OpCloseOrder
	// OpListTrades retrieves open trades for the account.
	OpListTrades
	// OpGetTrade retrieves a single open trade by identifier.
	OpGetTrade
	// OpCloseTrade closes an open trade.
	OpCloseTrade
	// OpListPositions retrieves aggregate positions, optionally per instrument.
	OpListPositions
	// OpListTransactions retrieves the account transaction history.
	OpListTransactions
	// OpGetTransaction retrieves a single transaction by identifier.
	OpGetTransaction
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return [...]string{
		"GET_PRICES",
		"GET_ACCOUNT",
		"CREATE_ORDER",
		"LIST_ORDERS",
		"GET_ORDER",
		"CLOSE_ORDER",
		"LIST_TRADES",
		"GET_TRADE",
		"CLOSE_TRADE",
		"LIST_POSITIONS",
		"LIST_TRANSACTIONS",
		"GET_TRANSACTION",
	}[o]
}
