package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"fin-analyzer/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// weekdayWindowDays is the length of the trailing window used by SpendingByWeekday.
const weekdayWindowDays = 90

// phonePattern matches Russian mobile numbers such as "+7 921 11-22-33".
var phonePattern = regexp.MustCompile(`\+7[\s\-]?\d{3}[\s\-]?\d{2,3}[\s\-]?\d{2}[\s\-]?\d{2}`)

// AnalyticsService aggregates in-memory operations. It keeps no state between
// calls and is safe for concurrent use.
type AnalyticsService struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewAnalyticsService(logger *zap.Logger, now func() time.Time) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{
		logger: logger,
		now:    now,
	}
}

// InvestmentBank returns how much would be put aside in a month if every
// expense were rounded up to the next multiple of limit.
//
// Operations are selected by a plain prefix match of OperationDate against
// month ("2024-06"), the date is never parsed.
func (s *AnalyticsService) InvestmentBank(month string, transactions []models.Transaction, limit int) (decimal.Decimal, error) {
	if limit <= 0 {
		return decimal.Zero, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}

	s.logger.Info("Calculating investment bank",
		zap.String("month", month),
		zap.Int("limit", limit),
		zap.Int("transactions", len(transactions)),
	)

	step := decimal.NewFromInt(int64(limit))
	total := decimal.Zero
	for _, tx := range transactions {
		if !strings.HasPrefix(tx.OperationDate, month) {
			continue
		}
		diff := roundingDiff(tx.Amount, step)
		if diff.IsPositive() {
			s.logger.Debug("Rounding expense",
				zap.String("amount", tx.Amount.Abs().String()),
				zap.String("saved", diff.String()),
			)
		}
		total = total.Add(diff)
	}

	total = total.Round(2)
	s.logger.Info("Investment bank calculated", zap.String("month", month), zap.String("invested", total.String()))
	return total, nil
}

// roundingDiff is the distance from |amount| up to the next multiple of step.
// Credits contribute nothing.
func roundingDiff(amount, step decimal.Decimal) decimal.Decimal {
	if !amount.IsNegative() {
		return decimal.Zero
	}
	rem := amount.Abs().Mod(step)
	if rem.IsZero() {
		return decimal.Zero
	}
	return step.Sub(rem)
}

// FindPhoneTransactions keeps operations whose description contains a phone
// number, in input order.
func (s *AnalyticsService) FindPhoneTransactions(transactions []models.Transaction) []models.Transaction {
	result := make([]models.Transaction, 0)
	for _, tx := range transactions {
		if tx.Description != "" && phonePattern.MatchString(tx.Description) {
			result = append(result, tx)
		}
	}

	s.logger.Info("Phone transactions found",
		zap.Int("transactions", len(transactions)),
		zap.Int("matched", len(result)),
	)
	return result
}

// CashbackByCategory sums expenses per category for a calendar month.
// Operations with a date that does not parse are skipped.
func (s *AnalyticsService) CashbackByCategory(transactions []models.Transaction, year, month int) map[string]decimal.Decimal {
	s.logger.Info("Analyzing cashback categories", zap.Int("year", year), zap.Int("month", month))

	totals := make(map[string]decimal.Decimal)
	skipped := 0
	for _, tx := range transactions {
		date, err := tx.Date()
		if err != nil {
			skipped++
			continue
		}
		if date.Year() != year || int(date.Month()) != month || !tx.IsDebit() {
			continue
		}
		category := tx.CategoryOrDefault()
		totals[category] = totals[category].Add(tx.Amount.Abs())
	}

	s.logger.Info("Cashback categories analyzed",
		zap.Int("categories", len(totals)),
		zap.Int("skipped_bad_dates", skipped),
	)
	return totals
}

// SpendingByWeekday averages expenses per weekday over the 90 days ending at
// date (inclusive). An empty date means today. Weekdays without expenses are
// reported as zero.
func (s *AnalyticsService) SpendingByWeekday(transactions []models.Transaction, date string) (models.WeekdaySpending, error) {
	end, err := s.referenceDate(date)
	if err != nil {
		s.logger.Error("Invalid report date", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	start := end.AddDate(0, 0, -weekdayWindowDays)

	s.logger.Info("Calculating spending by weekday",
		zap.String("from", start.Format(models.DateLayout)),
		zap.String("to", end.Format(models.DateLayout)),
	)

	var sums [7]decimal.Decimal
	var counts [7]int64
	for _, tx := range transactions {
		if !tx.IsDebit() {
			continue
		}
		opDate, err := tx.Date()
		if err != nil || opDate.Before(start) || opDate.After(end) {
			continue
		}
		day := opDate.Weekday()
		sums[day] = sums[day].Add(tx.Amount.Abs())
		counts[day]++
	}

	result := make(models.WeekdaySpending, 0, len(models.CanonicalWeekdays))
	for _, day := range models.CanonicalWeekdays {
		avg := decimal.Zero
		if counts[day] > 0 {
			avg = sums[day].Div(decimal.NewFromInt(counts[day])).Round(2)
		}
		result = append(result, models.WeekdayAverage{Day: models.WeekdayLabel(day), Average: avg})
	}

	s.logger.Info("Spending by weekday calculated", zap.Any("averages", result))
	return result, nil
}

func (s *AnalyticsService) referenceDate(date string) (time.Time, error) {
	if date == "" {
		now := s.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return parsed, nil
}
