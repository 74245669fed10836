package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fembalance/internal/domain/history"
	"fembalance/pkg/errors"
)

// Compile-time check
var _ history.Repository = (*PredictionRepository)(nil)

// PredictionRepository implements history.Repository using sqlx
type PredictionRepository struct {
	db *sqlx.DB
}

// NewPredictionRepository creates a new prediction history repository
func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Create inserts a new history entry
func (r *PredictionRepository) Create(ctx context.Context, entry *history.Entry) error {
	query := `
		INSERT INTO prediction_history (
			id, kind, model_version, confidence, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Kind, entry.ModelVersion, entry.Confidence, entry.Payload, entry.CreatedAt,
	)

	return err
}

// GetByID retrieves a history entry by ID
func (r *PredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*history.Entry, error) {
	var entry history.Entry

	query := `SELECT * FROM prediction_history WHERE id = $1`

	err := r.db.GetContext(ctx, &entry, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	return &entry, nil
}

// ListSince retrieves entries of a kind created since a specific time
func (r *PredictionRepository) ListSince(ctx context.Context, kind history.Kind, since time.Time) ([]history.Entry, error) {
	var entries []history.Entry

	query := `
		SELECT * FROM prediction_history
		WHERE kind = $1 AND created_at >= $2
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &entries, query, kind, since)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
