package dto

import "fin-analyzer/internal/models"

// A request without "transactions" is evaluated against the configured
// operations source; an explicit empty list is evaluated as is.

type InvestmentBankRequest struct {
	Month        string               `json:"month" example:"2024-06"`
	Limit        int                  `json:"limit" example:"50"`
	Transactions []models.Transaction `json:"transactions,omitempty"`
}

type InvestmentBankResponse struct {
	Month    string  `json:"month"`
	Limit    int     `json:"limit"`
	Invested float64 `json:"invested"`
}

type PhoneTransactionsRequest struct {
	Transactions []models.Transaction `json:"transactions,omitempty"`
}

type CashbackCategoriesRequest struct {
	Year         int                  `json:"year" example:"2024"`
	Month        int                  `json:"month" example:"6"`
	Transactions []models.Transaction `json:"transactions,omitempty"`
}

type SpendingByWeekdayRequest struct {
	Date         string               `json:"date,omitempty" example:"2024-06-03"`
	Transactions []models.Transaction `json:"transactions,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
