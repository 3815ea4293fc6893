package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkrylov/resume-analyzer/pkg/analysis"
)

// HistoryRepository stores analysis results of authenticated users.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) (*HistoryRepository, error) {
	r := &HistoryRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *HistoryRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS analyses (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	mode TEXT NOT NULL,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS analyses_user_created_idx ON analyses (user_id, created_at DESC);
`)
	return err
}

func (r *HistoryRepository) Save(ctx context.Context, rec analysis.HistoryRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO analyses (id, user_id, mode, result, created_at)
VALUES ($1, $2, $3, $4, $5)
`, rec.ID, rec.UserID, string(rec.Mode), resultJSON, rec.CreatedAt)
	return err
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]analysis.HistoryRecord, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, mode, result, created_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analysis.HistoryRecord
	for rows.Next() {
		var rec analysis.HistoryRecord
		var mode string
		var resultBytes []byte
		var created time.Time
		if err := rows.Scan(&rec.ID, &rec.UserID, &mode, &resultBytes, &created); err != nil {
			return nil, err
		}
		rec.Mode = analysis.ResultType(mode)
		_ = json.Unmarshal(resultBytes, &rec.Result)
		rec.CreatedAt = created.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
