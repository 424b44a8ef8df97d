package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedCategory is used when an operation carries no category.
const UncategorizedCategory = "Без категории"

// DateLayout is the ISO date layout of OperationDate.
const DateLayout = "2006-01-02"

const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)

// Transaction is a single bank operation. Amount is negative for expenses.
type Transaction struct {
	OperationDate string          `json:"operation_date"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`

	OperatedAt    time.Time           `json:"-"`
	PaymentAmount decimal.NullDecimal `json:"payment_amount"`
	CardNumber    string              `json:"card_number,omitempty"`
	Status        string              `json:"status,omitempty"`
}

func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

func (t Transaction) CategoryOrDefault() string {
	if t.Category == "" {
		return UncategorizedCategory
	}
	return t.Category
}

// Date parses OperationDate as a calendar day in UTC.
func (t Transaction) Date() (time.Time, error) {
	return time.Parse(DateLayout, t.OperationDate)
}

// Payment is the payment amount, or Amount when the operation has none.
func (t Transaction) Payment() decimal.Decimal {
	if t.PaymentAmount.Valid {
		return t.PaymentAmount.Decimal
	}
	return t.Amount
}

type transactionJSON struct {
	OperationDate string       `json:"operation_date"`
	Amount        json.Number  `json:"amount"`
	Category      string       `json:"category,omitempty"`
	Description   string       `json:"description,omitempty"`
	PaymentAmount *json.Number `json:"payment_amount,omitempty"`
	CardNumber    string       `json:"card_number,omitempty"`
	Status        string       `json:"status,omitempty"`
}

// MarshalJSON renders amounts as JSON numbers and leaves out a payment
// amount the operation never had. Text is written without HTML escaping.
func (t Transaction) MarshalJSON() ([]byte, error) {
	out := transactionJSON{
		OperationDate: t.OperationDate,
		Amount:        json.Number(t.Amount.String()),
		Category:      t.Category,
		Description:   t.Description,
		CardNumber:    t.CardNumber,
		Status:        t.Status,
	}
	if t.PaymentAmount.Valid {
		payment := json.Number(t.PaymentAmount.Decimal.String())
		out.PaymentAmount = &payment
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
