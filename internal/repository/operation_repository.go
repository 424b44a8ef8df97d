package repository

import (
	"context"
	"fmt"
	"time"

	"fin-analyzer/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const operationsTable = "operations"

const createOperationsTable = `
CREATE TABLE IF NOT EXISTS operations (
	id             UUID PRIMARY KEY,
	operated_at    TIMESTAMP NOT NULL,
	operation_date TEXT NOT NULL,
	amount         NUMERIC(14, 2) NOT NULL,
	payment_amount NUMERIC(14, 2) NOT NULL,
	category       TEXT NOT NULL DEFAULT '',
	description    TEXT NOT NULL DEFAULT '',
	card_number    TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS operations_operated_at_idx ON operations (operated_at);
`

var operationColumns = []string{
	"operated_at", "operation_date", "amount", "payment_amount", "category", "description", "card_number", "status",
}

// OperationRepository stores imported bank operations in Postgres.
type OperationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewOperationRepository(db *pgxpool.Pool, logger *zap.Logger) *OperationRepository {
	return &OperationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *OperationRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createOperationsTable); err != nil {
		return fmt.Errorf("failed to create operations table: %w", err)
	}
	return nil
}

func (r *OperationRepository) CreateBatch(ctx context.Context, operations []models.Transaction) error {
	if len(operations) == 0 {
		return nil
	}

	sql, args, err := buildInsert(operations).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to insert operations: %w", err)
	}

	r.logger.Info("Operations stored", zap.Int64("rows", tag.RowsAffected()))
	return nil
}

func (r *OperationRepository) ListAll(ctx context.Context) ([]models.Transaction, error) {
	return r.list(ctx, buildSelect())
}

// ListByPeriod returns operations with from <= operated_at <= to.
func (r *OperationRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	return r.list(ctx, buildSelect().Where(squirrel.And{
		squirrel.GtOrEq{"operated_at": from},
		squirrel.LtOrEq{"operated_at": to},
	}))
}

func (r *OperationRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.Transaction, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	operations := make([]models.Transaction, 0)
	for rows.Next() {
		var (
			op      models.Transaction
			amount  string
			payment string
		)
		if err := rows.Scan(
			&op.OperatedAt, &op.OperationDate, &amount, &payment, &op.Category, &op.Description, &op.CardNumber, &op.Status,
		); err != nil {
			return nil, err
		}
		if op.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
		}
		paymentAmount, err := decimal.NewFromString(payment)
		if err != nil {
			return nil, fmt.Errorf("invalid stored payment amount %q: %w", payment, err)
		}
		op.PaymentAmount = decimal.NewNullDecimal(paymentAmount)
		operations = append(operations, op)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return operations, nil
}

func buildInsert(operations []models.Transaction) squirrel.InsertBuilder {
	builder := squirrel.Insert(operationsTable).
		Columns(append([]string{"id"}, operationColumns...)...).
		PlaceholderFormat(squirrel.Dollar)

	for _, op := range operations {
		builder = builder.Values(
			uuid.New(), op.OperatedAt, op.OperationDate, op.Amount.String(), op.Payment().String(),
			op.Category, op.Description, op.CardNumber, op.Status,
		)
	}
	return builder
}

func buildSelect() squirrel.SelectBuilder {
	return squirrel.Select(castedColumns()...).
		From(operationsTable).
		OrderBy("operated_at ASC").
		PlaceholderFormat(squirrel.Dollar)
}

// castedColumns reads NUMERIC columns as text so they scan into strings
// without float rounding.
func castedColumns() []string {
	columns := make([]string, len(operationColumns))
	for i, col := range operationColumns {
		switch col {
		case "amount", "payment_amount":
			columns[i] = col + "::text"
		default:
			columns[i] = col
		}
	}
	return columns
}
