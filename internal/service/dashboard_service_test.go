package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"fin-analyzer/internal/ingest"
	"fin-analyzer/internal/models"
	"fin-analyzer/internal/settings"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	operations []models.Transaction
	err        error
	from, to   time.Time
}

func (f *fakeSource) ListAll(ctx context.Context) ([]models.Transaction, error) {
	return f.operations, f.err
}

func (f *fakeSource) ListByPeriod(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	return ingest.FilterByPeriod(f.operations, from, to), nil
}

type fakeRates struct {
	rates map[string]decimal.Decimal
	err   error
}

func (f fakeRates) Rates(ctx context.Context) (map[string]decimal.Decimal, error) {
	return f.rates, f.err
}

type fakeQuotes struct {
	prices map[string]decimal.Decimal
	calls  atomic.Int32
}

func (f *fakeQuotes) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	f.calls.Add(1)
	price, ok := f.prices[symbol]
	if !ok {
		return decimal.Zero, errors.New("no quote")
	}
	return price, nil
}

type fakeSettings struct {
	settings *settings.UserSettings
	err      error
}

func (f fakeSettings) Load() (*settings.UserSettings, error) {
	return f.settings, f.err
}

func op(at time.Time, amount, category, description, card string) models.Transaction {
	d := decimal.RequireFromString(amount)
	return models.Transaction{
		OperationDate: at.Format(models.DateLayout),
		OperatedAt:    at,
		Amount:        d,
		PaymentAmount: decimal.NewNullDecimal(d),
		Category:      category,
		Description:   description,
		CardNumber:    card,
		Status:        models.StatusOK,
	}
}

func dashboardOperations() []models.Transaction {
	day := func(d, h int) time.Time { return time.Date(2024, 6, d, h, 0, 0, 0, time.UTC) }
	return []models.Transaction{
		op(day(1, 10), "-1262.00", "Супермаркеты", "Магнит", "*7197"),
		op(day(2, 11), "-7884.00", "Переводы", "Иван С.", "*5091"),
		op(day(3, 12), "-64.00", "Фастфуд", "Mouse Tail", "*7197"),
		op(day(4, 13), "50000.00", "Пополнения", "Зарплата", ""),
		op(day(5, 14), "-120.50", "", "Кофе", "*4556"),
		op(day(6, 15), "-300.00", "Связь", "МТС +7 921 111-22-33", ""),
		op(day(20, 9), "-99999.00", "Дом", "after the report date", "*7197"),
		op(time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC), "-5000.00", "Дом", "previous month", "*7197"),
	}
}

func newDashboard(source TransactionSource, rates RatesProvider, quotes QuoteProvider, loader SettingsLoader) *DashboardService {
	return NewDashboardService(source, rates, quotes, loader, zap.NewNop())
}

func TestGenerateMainPage(t *testing.T) {
	source := &fakeSource{operations: dashboardOperations()}
	quotes := &fakeQuotes{prices: map[string]decimal.Decimal{
		"AAPL": decimal.RequireFromString("150.129"),
	}}
	rates := fakeRates{rates: map[string]decimal.Decimal{
		"USD": decimal.RequireFromString("0.0125"),
	}}
	loader := fakeSettings{settings: &settings.UserSettings{
		Currencies: []string{"USD", "EUR"},
		Stocks:     []string{"AAPL", "TSLA"},
	}}

	page, err := newDashboard(source, rates, quotes, loader).
		GenerateMainPage(context.Background(), "2024-06-15 14:30:00")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), source.from)
	assert.Equal(t, time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC), source.to)

	assert.Equal(t, "Добрый день", page.Greeting)

	assert.Equal(t, []models.CardStat{
		{LastDigits: "4556", TotalSpent: 120.5, Cashback: 1},
		{LastDigits: "5091", TotalSpent: 7884, Cashback: 78},
		{LastDigits: "7197", TotalSpent: 1326, Cashback: 13},
	}, page.Cards)

	require.Len(t, page.TopTransactions, 5)
	assert.Equal(t, 50000.0, page.TopTransactions[0].Amount)
	assert.Equal(t, "04.06.2024", page.TopTransactions[0].Date)
	assert.Equal(t, -7884.0, page.TopTransactions[1].Amount)
	assert.Equal(t, "*5091", page.TopTransactions[1].Card)
	assert.Equal(t, models.UncategorizedCategory, page.TopTransactions[4].Category)

	require.Len(t, page.CurrencyRates, 2)
	require.NotNil(t, page.CurrencyRates[0].Rate)
	assert.Equal(t, 80.0, *page.CurrencyRates[0].Rate)
	assert.Equal(t, "EUR", page.CurrencyRates[1].Currency)
	assert.Nil(t, page.CurrencyRates[1].Rate)

	require.Len(t, page.StockPrices, 2)
	assert.Equal(t, "AAPL", page.StockPrices[0].Stock)
	require.NotNil(t, page.StockPrices[0].Price)
	assert.Equal(t, 150.13, *page.StockPrices[0].Price)
	assert.Equal(t, "TSLA", page.StockPrices[1].Stock)
	assert.Nil(t, page.StockPrices[1].Price)
	assert.EqualValues(t, 2, quotes.calls.Load())
}

func TestGenerateMainPage_RatesUnavailable(t *testing.T) {
	loader := fakeSettings{settings: &settings.UserSettings{Currencies: []string{"USD"}}}
	page, err := newDashboard(
		&fakeSource{},
		fakeRates{err: errors.New("timeout")},
		&fakeQuotes{},
		loader,
	).GenerateMainPage(context.Background(), "2024-06-15")
	require.NoError(t, err)

	require.Len(t, page.CurrencyRates, 1)
	assert.Nil(t, page.CurrencyRates[0].Rate)
	assert.Empty(t, page.StockPrices)
	assert.Empty(t, page.Cards)
	assert.Empty(t, page.TopTransactions)
	assert.Equal(t, "Доброй ночи", page.Greeting)
}

func TestGenerateMainPage_Errors(t *testing.T) {
	loader := fakeSettings{settings: &settings.UserSettings{}}

	t.Run("invalid date", func(t *testing.T) {
		_, err := newDashboard(&fakeSource{}, fakeRates{}, &fakeQuotes{}, loader).
			GenerateMainPage(context.Background(), "15.06.2024")
		assert.ErrorIs(t, err, ErrInvalidDateTime)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("source failure", func(t *testing.T) {
		_, err := newDashboard(&fakeSource{err: errors.New("db down")}, fakeRates{}, &fakeQuotes{}, loader).
			GenerateMainPage(context.Background(), "2024-06-15 10:00:00")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("settings failure", func(t *testing.T) {
		_, err := newDashboard(&fakeSource{}, fakeRates{}, &fakeQuotes{}, fakeSettings{err: errors.New("missing")}).
			GenerateMainPage(context.Background(), "2024-06-15 10:00:00")
		require.Error(t, err)
	})
}

func TestTopTransactions_StableOrder(t *testing.T) {
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ops := []models.Transaction{
		op(at, "-100", "A", "first", ""),
		op(at, "100", "B", "second", ""),
		op(at, "-50", "C", "third", ""),
	}

	top := TopTransactions(ops)
	require.Len(t, top, 3)
	assert.Equal(t, "first", top[0].Description)
	assert.Equal(t, "second", top[1].Description)
	assert.Equal(t, "third", top[2].Description)
	assert.Equal(t, "first", ops[0].Description, "input is not reordered")
}
