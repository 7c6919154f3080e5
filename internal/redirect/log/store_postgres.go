package log

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// PostgresStore appends redirect events to PostgreSQL. The table carries a
// foreign key to organizations, so every event references a live organization
// at creation time.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, e Event) error {
	query := `
		INSERT INTO redirect_events (id, organization_id, occurred_at)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.ExecContext(ctx, query, e.ID, e.OrgID, e.At); err != nil {
		return fmt.Errorf("insert redirect event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]Event, error) {
	query := `
		SELECT id, organization_id, occurred_at
		FROM redirect_events
		WHERE organization_id = $1
		ORDER BY occurred_at
	`
	rows, err := s.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list redirect events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.OrgID, &e.At); err != nil {
			return nil, fmt.Errorf("scan redirect event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
