package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fin-analyzer/internal/models"
	"fin-analyzer/internal/settings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	topTransactionsLimit = 5
	quoteFetchLimit      = 4
)

// cashbackStep is the spend that earns one rouble of card cashback.
var cashbackStep = decimal.NewFromInt(100)

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	models.DateLayout,
}

var ErrInvalidDateTime = fmt.Errorf("%w: date must be YYYY-MM-DD HH:MM:SS", ErrInvalidFormat)

// TransactionSource loads operations from a CSV export or the database.
type TransactionSource interface {
	ListAll(ctx context.Context) ([]models.Transaction, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]models.Transaction, error)
}

type RatesProvider interface {
	Rates(ctx context.Context) (map[string]decimal.Decimal, error)
}

type QuoteProvider interface {
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
}

type SettingsLoader interface {
	Load() (*settings.UserSettings, error)
}

type DashboardService struct {
	source   TransactionSource
	rates    RatesProvider
	quotes   QuoteProvider
	settings SettingsLoader
	logger   *zap.Logger
}

func NewDashboardService(
	source TransactionSource,
	rates RatesProvider,
	quotes QuoteProvider,
	settingsLoader SettingsLoader,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		source:   source,
		rates:    rates,
		quotes:   quotes,
		settings: settingsLoader,
		logger:   logger,
	}
}

// GenerateMainPage builds the dashboard for the period from the first day of
// the month up to dateTime.
func (s *DashboardService) GenerateMainPage(ctx context.Context, dateTime string) (*models.Dashboard, error) {
	current, err := parseDateTime(dateTime)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Generating main page", zap.Time("date", current))

	start := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, current.Location())
	operations, err := s.source.ListByPeriod(ctx, start, current)
	if err != nil {
		return nil, fmt.Errorf("failed to load operations: %w", err)
	}
	s.logger.Info("Operations loaded for period", zap.Int("count", len(operations)))

	userSettings, err := s.settings.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load user settings: %w", err)
	}

	var (
		currencyRates []models.CurrencyRate
		stockPrices   []models.StockPrice
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		currencyRates = s.currencyRates(gctx, userSettings.Currencies)
		return nil
	})
	g.Go(func() error {
		stockPrices = s.stockPrices(gctx, userSettings.Stocks)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Greeting:        Greeting(current),
		Cards:           CardStats(operations),
		TopTransactions: TopTransactions(operations),
		CurrencyRates:   currencyRates,
		StockPrices:     stockPrices,
	}, nil
}

func parseDateTime(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, value)
}

// CardStats sums expenses per card, one rouble of cashback per full 100 spent.
// Cards are ordered by number; operations without a card are ignored.
func CardStats(operations []models.Transaction) []models.CardStat {
	totals := make(map[string]decimal.Decimal)
	for _, op := range operations {
		if !op.IsDebit() || op.CardNumber == "" {
			continue
		}
		totals[op.CardNumber] = totals[op.CardNumber].Add(op.Amount)
	}

	cards := make([]string, 0, len(totals))
	for card := range totals {
		cards = append(cards, card)
	}
	sort.Strings(cards)

	stats := make([]models.CardStat, 0, len(cards))
	for _, card := range cards {
		spent := totals[card].Neg().Round(2)
		stats = append(stats, models.CardStat{
			LastDigits: LastDigits(card, 4),
			TotalSpent: spent.InexactFloat64(),
			Cashback:   spent.Div(cashbackStep).Floor().IntPart(),
		})
	}
	return stats
}

// TopTransactions returns the five operations with the largest payment
// amount by absolute value.
func TopTransactions(operations []models.Transaction) []models.TopTransaction {
	sorted := make([]models.Transaction, len(operations))
	copy(sorted, operations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Payment().Abs().GreaterThan(sorted[j].Payment().Abs())
	})
	if len(sorted) > topTransactionsLimit {
		sorted = sorted[:topTransactionsLimit]
	}

	top := make([]models.TopTransaction, 0, len(sorted))
	for _, op := range sorted {
		date := op.OperatedAt
		if date.IsZero() {
			date, _ = op.Date()
		}
		entry := models.TopTransaction{
			Date:        FormatDate(date),
			Amount:      op.Payment().Round(2).InexactFloat64(),
			Category:    op.CategoryOrDefault(),
			Description: op.Description,
		}
		if op.CardNumber != "" {
			entry.Card = MaskPaymentSource(op.CardNumber)
		}
		top = append(top, entry)
	}
	return top
}

func (s *DashboardService) currencyRates(ctx context.Context, currencies []string) []models.CurrencyRate {
	result := make([]models.CurrencyRate, 0, len(currencies))
	if len(currencies) == 0 {
		return result
	}

	rates, err := s.rates.Rates(ctx)
	if err != nil {
		s.logger.Warn("Failed to fetch currency rates", zap.Error(err))
		rates = nil
	}

	for _, currency := range currencies {
		rate, ok := rates[currency]
		if !ok || rate.IsZero() {
			s.logger.Warn("Currency rate not found", zap.String("currency", currency))
			result = append(result, models.CurrencyRate{Currency: currency})
			continue
		}
		// rates are quoted per unit of base currency, the page shows the inverse
		value := decimal.NewFromInt(1).Div(rate).Round(2).InexactFloat64()
		result = append(result, models.CurrencyRate{Currency: currency, Rate: &value})
	}
	return result
}

func (s *DashboardService) stockPrices(ctx context.Context, symbols []string) []models.StockPrice {
	result := make([]models.StockPrice, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(quoteFetchLimit)

	for i, symbol := range symbols {
		result[i] = models.StockPrice{Stock: symbol}
		i, symbol := i, symbol // per-iteration copies; go.mod targets go 1.21 loop semantics
		g.Go(func() error {
			price, err := s.quotes.Price(gctx, symbol)
			if err != nil {
				s.logger.Warn("Failed to fetch stock price", zap.String("stock", symbol), zap.Error(err))
				return nil
			}
			value := price.Round(2).InexactFloat64()
			result[i].Price = &value
			return nil
		})
	}
	_ = g.Wait()
	return result
}
