// Package ingest reads bank operation exports into models.Transaction.
package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fin-analyzer/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Column names of the bank export.
const (
	ColumnOperationDate = "Дата операции"
	ColumnCardNumber    = "Номер карты"
	ColumnStatus        = "Статус"
	ColumnAmount        = "Сумма операции"
	ColumnPaymentAmount = "Сумма платежа"
	ColumnCategory      = "Категория"
	ColumnDescription   = "Описание"
)

var operationDateLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	models.DateLayout,
}

var ErrMissingColumn = errors.New("required column is missing")

// ReadCSV parses an export. Rows with an unreadable date or amount are logged
// and skipped.
func ReadCSV(ctx context.Context, r io.Reader, logger *zap.Logger) ([]models.Transaction, error) {
	br := bufio.NewReader(r)
	comma, err := sniffDelimiter(br)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []models.Transaction{}, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))] = i
	}
	for _, required := range []string{ColumnOperationDate, ColumnAmount} {
		if _, ok := colIndex[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return sanitizeText(record[idx])
	}

	transactions := make([]models.Transaction, 0)
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		operatedAt, err := parseOperationDate(field(record, ColumnOperationDate))
		if err != nil {
			logger.Warn("Skipping record with invalid date", zap.Int("line", line), zap.Error(err))
			continue
		}
		amount, err := ParseAmount(field(record, ColumnAmount))
		if err != nil {
			logger.Warn("Skipping record with invalid amount", zap.Int("line", line), zap.Error(err))
			continue
		}
		payment := amount
		if raw := field(record, ColumnPaymentAmount); raw != "" {
			if parsed, err := ParseAmount(raw); err == nil {
				payment = parsed
			} else {
				logger.Warn("Invalid payment amount, using operation amount", zap.Int("line", line), zap.String("value", raw))
			}
		}

		transactions = append(transactions, models.Transaction{
			OperationDate: operatedAt.Format(models.DateLayout),
			Amount:        amount,
			Category:      field(record, ColumnCategory),
			Description:   field(record, ColumnDescription),
			OperatedAt:    operatedAt,
			PaymentAmount: decimal.NewNullDecimal(payment),
			CardNumber:    field(record, ColumnCardNumber),
			Status:        field(record, ColumnStatus),
		})
	}

	logger.Info("Operations parsed from CSV", zap.Int("count", len(transactions)), zap.Int("lines", line))
	return transactions, nil
}

// sanitizeText drops invalid UTF-8 bytes, which Postgres rejects on insert,
// and trims surrounding spaces.
func sanitizeText(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, ""))
}

// ParseAmount accepts "-160,89", "-160.89" and "1 500,00".
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(" ", "", "\u00a0", "", ",", ".").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(cleaned)
}

func parseOperationDate(raw string) (time.Time, error) {
	for _, layout := range operationDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised operation date %q", raw)
}

// sniffDelimiter looks at the header line: exports come with either ';' or ','.
func sniffDelimiter(br *bufio.Reader) (rune, error) {
	head, err := br.Peek(br.Size())
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return 0, fmt.Errorf("failed to read CSV: %w", err)
	}
	firstLine := string(head)
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}
	if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		return ';', nil
	}
	return ',', nil
}

// LoadFile reads an export from disk.
func LoadFile(ctx context.Context, path string, logger *zap.Logger) ([]models.Transaction, error) {
	logger.Info("Reading operations", zap.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	return ReadCSV(ctx, file, logger)
}
