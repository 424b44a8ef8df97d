package ingest

import (
	"context"
	"time"

	"fin-analyzer/internal/models"

	"go.uber.org/zap"
)

// FileSource serves operations from a CSV export. The file is re-read on
// every call.
type FileSource struct {
	path   string
	logger *zap.Logger
}

func NewFileSource(path string, logger *zap.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

func (s *FileSource) ListAll(ctx context.Context) ([]models.Transaction, error) {
	return LoadFile(ctx, s.path, s.logger)
}

// ListByPeriod keeps operations with from <= OperatedAt <= to.
func (s *FileSource) ListByPeriod(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByPeriod(all, from, to), nil
}

func FilterByPeriod(transactions []models.Transaction, from, to time.Time) []models.Transaction {
	result := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.OperatedAt.Before(from) || tx.OperatedAt.After(to) {
			continue
		}
		result = append(result, tx)
	}
	return result
}
