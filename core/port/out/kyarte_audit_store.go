package out

import (
	"context"

	"kyarte_server/core/domain"
)

// AnalysisAuditStore persists per-result analysis traces for diagnostics.
type AnalysisAuditStore interface {
	Save(ctx context.Context, record *domain.AnalysisAuditRecord) error
	RecentByNote(ctx context.Context, noteID int64, limit int) ([]*domain.AnalysisAuditRecord, error)
}
