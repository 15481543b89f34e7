package repo

import (
	"context"

	"github.com/BenedictKing/jina-sum/internal/biz/domain"
)

// HistoryRepo is the summary history interface (SQLite)
type HistoryRepo interface {
	// Record appends a generated summary to the history
	Record(ctx context.Context, rec *domain.SummaryRecord) error

	// Recent lists the most recent records, newest first
	Recent(ctx context.Context, limit int) ([]*domain.SummaryRecord, error)

	// Count returns the total number of records
	Count(ctx context.Context) (int64, error)

	Close() error
}
