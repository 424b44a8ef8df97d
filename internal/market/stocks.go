package market

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StocksClient reads last prices from the Alpha Vantage GLOBAL_QUOTE endpoint.
type StocksClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

func NewStocksClient(httpClient *http.Client, baseURL, apiKey string, logger *zap.Logger) *StocksClient {
	return &StocksClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

func (c *StocksClient) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if c.apiKey == "" {
		return decimal.Zero, ErrMissingAPIKey
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid quotes URL: %w", err)
	}
	query := endpoint.Query()
	query.Set("function", "GLOBAL_QUOTE")
	query.Set("symbol", symbol)
	query.Set("apikey", c.apiKey)
	endpoint.RawQuery = query.Encode()

	c.logger.Debug("Fetching stock price", zap.String("symbol", symbol))

	var quoteResp struct {
		GlobalQuote map[string]string `json:"Global Quote"`
	}
	if err := getJSON(ctx, c.httpClient, endpoint.String(), &quoteResp); err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	raw, ok := quoteResp.GlobalQuote["05. price"]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrQuoteNotFound, symbol)
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q for %s: %w", raw, symbol, err)
	}

	return price, nil
}
