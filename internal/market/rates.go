package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrMissingAPIKey = errors.New("market data API key is not set")
	ErrQuoteNotFound = errors.New("quote not found in response")
)

// RatesClient fetches exchange rates from an exchangerate.host compatible API.
type RatesClient struct {
	httpClient *http.Client
	baseURL    string
	base       string
	logger     *zap.Logger
}

func NewRatesClient(httpClient *http.Client, baseURL, base string, logger *zap.Logger) *RatesClient {
	return &RatesClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		base:       base,
		logger:     logger,
	}
}

// Rates returns how many units of each currency one unit of the base buys.
func (c *RatesClient) Rates(ctx context.Context) (map[string]decimal.Decimal, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid rates URL: %w", err)
	}
	query := endpoint.Query()
	query.Set("base", c.base)
	endpoint.RawQuery = query.Encode()

	c.logger.Info("Fetching currency rates", zap.String("base", c.base))

	var ratesResp struct {
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := getJSON(ctx, c.httpClient, endpoint.String(), &ratesResp); err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	if ratesResp.Rates == nil {
		return nil, ErrQuoteNotFound
	}

	return ratesResp.Rates, nil
}

func getJSON(ctx context.Context, httpClient *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
