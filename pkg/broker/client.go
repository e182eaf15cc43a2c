package broker

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	httpclient "fxwire/internal/http"
	"fxwire/pkg/core"
)

// API is the full surface of the broker client. It exists so callers can
// substitute a fake in tests.
type API interface {
	GetPrices(ctx context.Context, instruments ...string) ([]core.Price, error)
	GetAccount(ctx context.Context) (*core.Account, error)

	CreateOrder(ctx context.Context, order *OrderRequest) (*core.OrderResult, error)
	ListOrders(ctx context.Context, opts ...ListOption) ([]core.Order, error)
	GetOrder(ctx context.Context, orderID string) (*core.Order, error)
	CloseOrder(ctx context.Context, orderID string) (*core.OrderCancelled, error)

	ListTrades(ctx context.Context, opts ...ListOption) ([]core.Trade, error)
	GetTrade(ctx context.Context, tradeID string) (*core.Trade, error)
	CloseTrade(ctx context.Context, tradeID string) (*core.TradeClosed, error)

	ListPositions(ctx context.Context, instrument string) ([]core.Position, error)

	ListTransactions(ctx context.Context, opts ...ListOption) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*core.Transaction, error)

	Raw(ctx context.Context, method, path string, query core.Params) (core.Params, error)
	Close() error
}

// Client is a synchronous, per-call blocking client for the broker's v1 REST
// API. It holds no mutable state beyond the immutable configuration, so a
// single instance is safe for concurrent use.
type Client struct {
	config     *core.ClientConfig
	headers    map[string]string
	httpClient *httpclient.Client
	protocol   *Protocol
	logger     zerolog.Logger
}

var _ API = (*Client)(nil)

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds configuration options for the Client.
type Options struct {
	Logger zerolog.Logger
}

// WithLogger returns an option that sets the logger for the client.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// New creates a broker client from the given configuration. The fixed header
// set (form content type, Unix datetime format, bearer authorization) is
// assembled here once and never mutated afterwards.
func New(config *core.ClientConfig, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	headers := buildHeaders(config)

	hc, err := httpclient.NewClient(&httpclient.Config{
		BaseURL:            config.BaseURL,
		Timeout:            config.Timeout,
		ConnectTimeout:     config.ConnectTimeout,
		InsecureSkipVerify: config.InsecureSkipVerify,
		Headers:            headers,
	}, options.Logger)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	return &Client{
		config:     config,
		headers:    headers,
		httpClient: hc,
		protocol:   NewProtocol(config.AccountID),
		logger:     options.Logger,
	}, nil
}

// buildHeaders assembles the fixed header set. The datetime format header
// selects epoch timestamps in responses instead of RFC3339 strings.
func buildHeaders(config *core.ClientConfig) map[string]string {
	return map[string]string{
		"Content-Type":             "application/x-www-form-urlencoded",
		"X-Accept-Datetime-Format": "UNIX",
		"Authorization":            "Bearer " + config.AccessToken,
	}
}

// Headers returns a copy of the fixed header set sent on every request.
func (c *Client) Headers() map[string]string {
	return maps.Clone(c.headers)
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// GetPrices retrieves current quotes for the given instruments. An empty
// instrument list is rejected locally without dispatching a request.
func (c *Client) GetPrices(ctx context.Context, instruments ...string) ([]core.Price, error) {
	if len(instruments) == 0 {
		return nil, core.ErrNoInstruments
	}

	params := core.Params{
		"instruments": strings.Join(instruments, ","),
	}

	req, err := c.protocol.BuildRequest(ctx, core.OpGetPrices, params)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := c.protocol.ParseResponse(core.OpGetPrices, resp)
	if err != nil {
		return nil, err
	}

	prices, ok := result.([]core.Price)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return prices, nil
}

// GetAccount retrieves the configured account's state and margin figures.
func (c *Client) GetAccount(ctx context.Context) (*core.Account, error) {
	req, err := c.protocol.BuildRequest(ctx, core.OpGetAccount, core.Params{})
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := c.protocol.ParseResponse(core.OpGetAccount, resp)
	if err != nil {
		return nil, err
	}

	account, ok := result.(*core.Account)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return account, nil
}

// CreateOrder validates and submits a new order. The order is serialized to
// form fields only after validation passes.
func (c *Client) CreateOrder(ctx context.Context, order *OrderRequest) (*core.OrderResult, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	req, err := c.protocol.BuildRequest(ctx, core.OpCreateOrder, order.params())
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := c.protocol.ParseResponse(core.OpCreateOrder, resp)
	if err != nil {
		return nil, err
	}

	orderResult, ok := result.(*core.OrderResult)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return orderResult, nil
}

// ListOrders retrieves pending orders for the account.
func (c *Client) ListOrders(ctx context.Context, opts ...ListOption) ([]core.Order, error) {
	result, err := c.doList(ctx, core.OpListOrders, opts...)
	if err != nil {
		return nil, err
	}

	orders, ok := result.([]core.Order)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return orders, nil
}

// GetOrder retrieves a single pending order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*core.Order, error) {
	result, err := c.doItem(ctx, core.OpGetOrder, "order_id", orderID)
	if err != nil {
		return nil, err
	}

	order, ok := result.(*core.Order)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return order, nil
}

// CloseOrder cancels a pending order.
func (c *Client) CloseOrder(ctx context.Context, orderID string) (*core.OrderCancelled, error) {
	result, err := c.doItem(ctx, core.OpCloseOrder, "order_id", orderID)
	if err != nil {
		return nil, err
	}

	cancelled, ok := result.(*core.OrderCancelled)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return cancelled, nil
}

// ListTrades retrieves open trades for the account.
func (c *Client) ListTrades(ctx context.Context, opts ...ListOption) ([]core.Trade, error) {
	result, err := c.doList(ctx, core.OpListTrades, opts...)
	if err != nil {
		return nil, err
	}

	trades, ok := result.([]core.Trade)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return trades, nil
}

// GetTrade retrieves a single open trade.
func (c *Client) GetTrade(ctx context.Context, tradeID string) (*core.Trade, error) {
	result, err := c.doItem(ctx, core.OpGetTrade, "trade_id", tradeID)
	if err != nil {
		return nil, err
	}

	trade, ok := result.(*core.Trade)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return trade, nil
}

// CloseTrade closes the open trade with the given identifier.
func (c *Client) CloseTrade(ctx context.Context, tradeID string) (*core.TradeClosed, error) {
	result, err := c.doItem(ctx, core.OpCloseTrade, "trade_id", tradeID)
	if err != nil {
		return nil, err
	}

	closed, ok := result.(*core.TradeClosed)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return closed, nil
}

// ListPositions retrieves aggregate positions. An empty instrument lists all
// positions; a non-empty instrument narrows to that pair.
func (c *Client) ListPositions(ctx context.Context, instrument string) ([]core.Position, error) {
	params := core.Params{}
	if instrument != "" {
		params["instrument"] = instrument
	}

	req, err := c.protocol.BuildRequest(ctx, core.OpListPositions, params)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := c.protocol.ParseResponse(core.OpListPositions, resp)
	if err != nil {
		return nil, err
	}

	positions, ok := result.([]core.Position)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return positions, nil
}

// ListTransactions retrieves the account transaction history.
func (c *Client) ListTransactions(ctx context.Context, opts ...ListOption) ([]core.Transaction, error) {
	result, err := c.doList(ctx, core.OpListTransactions, opts...)
	if err != nil {
		return nil, err
	}

	transactions, ok := result.([]core.Transaction)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction record.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*core.Transaction, error) {
	result, err := c.doItem(ctx, core.OpGetTransaction, "transaction_id", transactionID)
	if err != nil {
		return nil, err
	}

	transaction, ok := result.(*core.Transaction)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", result)
	}

	return transaction, nil
}

// Raw dispatches a request against an arbitrary v1 path and returns the
// decoded body as a generic mapping. It is the forward-compatibility escape
// hatch for response fields the typed shapes do not carry.
func (c *Client) Raw(ctx context.Context, method, path string, query core.Params) (core.Params, error) {
	req := core.NewRequest(method, path)
	if query != nil {
		req.SetQueryParams(query)
	}

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() >= 400 {
		return nil, parseAPIError(resp)
	}

	var result core.Params
	if err := sonic.Unmarshal(resp.Bytes(), &result); err != nil {
		return nil, core.NewDecodeError(fmt.Errorf("unmarshal response: %w", err))
	}

	return result, nil
}

func (c *Client) doList(ctx context.Context, op core.Operation, opts ...ListOption) (any, error) {
	options := applyListOptions(opts...)

	params := core.Params{}
	if options.Count > 0 {
		params["count"] = options.Count
	}
	if options.Instrument != "" {
		params["instrument"] = options.Instrument
	}

	req, err := c.protocol.BuildRequest(ctx, op, params)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	return c.protocol.ParseResponse(op, resp)
}

func (c *Client) doItem(ctx context.Context, op core.Operation, idKey, id string) (any, error) {
	req, err := c.protocol.BuildRequest(ctx, op, core.Params{idKey: id})
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	return c.protocol.ParseResponse(op, resp)
}

func (c *Client) doRequest(ctx context.Context, req *core.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error

	switch req.Method {
	case http.MethodGet:
		resp, err = c.httpClient.Get(ctx, req.Path, c.buildRequestOptions(req)...)
	case http.MethodPost:
		resp, err = c.httpClient.Post(ctx, req.Path, c.buildRequestOptions(req)...)
	case http.MethodDelete:
		resp, err = c.httpClient.Delete(ctx, req.Path, c.buildRequestOptions(req)...)
	default:
		return nil, fmt.Errorf("unsupported method: %s", req.Method)
	}

	if err != nil {
		c.logger.Error().Err(err).
			Str("method", req.Method).
			Str("path", req.Path).
			Msg("http request failed")
		return nil, core.NewTransportError(err)
	}

	return resp, nil
}

func (c *Client) buildRequestOptions(req *core.Request) []httpclient.RequestOption {
	var opts []httpclient.RequestOption

	for k, v := range req.Headers {
		opts = append(opts, httpclient.WithHeader(k, v))
	}

	for k, v := range req.Query {
		opts = append(opts, httpclient.WithQueryParam(k, fmt.Sprint(v)))
	}

	if len(req.Form) > 0 {
		opts = append(opts, httpclient.WithFormData(req.Form))
	}

	return opts
}
