package history

import (
	"context"
	"database/sql"
)

const defaultListLimit = 50

// PostgresRepository persists activity records in the activity_log table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an activity repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save persists the record to the database. It sets r.ID on success.
func (r *PostgresRepository) Save(ctx context.Context, rec *Record) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO activity_log
			(user_id, category, state, score, mouse_distance, keystroke_count, click_count, entropy, action_detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		rec.UserID, rec.Category, rec.State, rec.Score, rec.MouseDistance,
		rec.KeystrokeCount, rec.ClickCount, nullFloat(rec.Entropy), rec.ActionDetail, rec.CreatedAt,
	).Scan(&rec.ID)
}

// ListRecent returns up to limit records for userID ordered newest first.
func (r *PostgresRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*Record, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, category, state, score, mouse_distance, keystroke_count, click_count, entropy, action_detail, created_at
		FROM activity_log WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		var rec Record
		var entropy sql.NullFloat64
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Category, &rec.State, &rec.Score,
			&rec.MouseDistance, &rec.KeystrokeCount, &rec.ClickCount, &entropy, &rec.ActionDetail, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if entropy.Valid {
			v := entropy.Float64
			rec.Entropy = &v
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
