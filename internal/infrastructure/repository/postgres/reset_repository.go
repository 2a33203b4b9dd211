package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var resetTables = []string{"statistics", "players", "news", "matches", "standings", "clubs", "job_runs"}

// ResetRepository wipes crawled data so the next crawl starts from scratch.
type ResetRepository struct {
	db *sqlx.DB
}

func NewResetRepository(db *sqlx.DB) *ResetRepository {
	return &ResetRepository{db: db}
}

// Truncate empties every data table and restarts the id sequences.
func (r *ResetRepository) Truncate(ctx context.Context) error {
	query := "TRUNCATE TABLE "
	for i, table := range resetTables {
		if i > 0 {
			query += ", "
		}
		query += table
	}
	query += " RESTART IDENTITY"
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}
