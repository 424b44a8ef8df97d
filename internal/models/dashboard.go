package models

// CardStat is the spend summary for one card over the dashboard period.
type CardStat struct {
	LastDigits string  `json:"last_digits"`
	TotalSpent float64 `json:"total_spent"`
	Cashback   int64   `json:"cashback"`
}

type TopTransaction struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Card        string  `json:"card,omitempty"`
}

// CurrencyRate holds the price of one unit of Currency; Rate is nil when unknown.
type CurrencyRate struct {
	Currency string   `json:"currency"`
	Rate     *float64 `json:"rate"`
}

// StockPrice holds the last quote of a ticker; Price is nil when unknown.
type StockPrice struct {
	Stock string   `json:"stock"`
	Price *float64 `json:"price"`
}

type Dashboard struct {
	Greeting        string           `json:"greeting"`
	Cards           []CardStat       `json:"cards"`
	TopTransactions []TopTransaction `json:"top_transactions"`
	CurrencyRates   []CurrencyRate   `json:"currency_rates"`
	StockPrices     []StockPrice     `json:"stock_prices"`
}
