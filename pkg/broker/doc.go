// Package broker implements a typed client for the broker's v1 REST trading
// API: pricing, account state, orders, trades, positions and transactions.
//
// The package includes:
//   - Client: endpoint methods returning typed response shapes
//   - Protocol: request building against the fixed v1 path templates and
//     response parsing, including broker error bodies
//   - OrderRequest: a validated, typed order submission
//
// Example usage:
//
//	config := core.DefaultConfig("https://api-fxpractice.example.com", token, account)
//	client, err := broker.New(config)
//	prices, err := client.GetPrices(ctx, "EUR_USD", "USD_JPY")
package broker
