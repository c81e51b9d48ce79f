package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

type IncidentRepository struct {
	db *sql.DB
}

// compile-time check: *IncidentRepository must satisfy port.IncidentSink
var _ port.IncidentSink = (*IncidentRepository)(nil)

func NewIncidentRepository(db *sql.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// Raise inserts an incident unless one with the same (source_type,
// source_id, title) is still open. The dedupe happens inside a single
// statement so concurrent stage runs cannot double-report.
func (r *IncidentRepository) Raise(ctx context.Context, in port.RaiseIncidentInput) error {
	log.Printf("raising incident %q for %s #%s...", in.Title, in.SourceType, in.SourceID)

	const query = `
      INSERT INTO system_incidents (id, source_type, source_id, title, detail)
      SELECT ?, ?, ?, ?, ?
      FROM DUAL
      WHERE NOT EXISTS (
        SELECT 1 FROM system_incidents
        WHERE source_type = ? AND source_id = ? AND title = ? AND resolved_at IS NULL
      )
    `
	_, err := r.db.ExecContext(ctx, query,
		uuid.NewUUID(), in.SourceType, in.SourceID, in.Title, in.Detail,
		in.SourceType, in.SourceID, in.Title,
	)
	return err
}

// OpenCount reports how many unresolved incidents exist for a source, shown
// on the asset details read path.
func (r *IncidentRepository) OpenCount(ctx context.Context, sourceType string, sourceID uuid.UUID) (int, error) {
	const query = `
      SELECT COUNT(*) FROM system_incidents
      WHERE source_type = ? AND source_id = ? AND resolved_at IS NULL
    `
	var n int
	if err := r.db.QueryRowContext(ctx, query, sourceType, sourceID).Scan(&n); err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return n, nil
}
