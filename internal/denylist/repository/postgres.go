package repository

import (
	"context"
	"database/sql"
	"errors"

	"jiaa/data-service/internal/denylist/domain"
)

// PostgresRepository persists denylist items in the denylist_items table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a denylist repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, appName string) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT app_name, is_game, status, report_count, last_reported_at
		FROM denylist_items WHERE app_name = $1`, appName)

	var item domain.Item
	err := row.Scan(&item.AppName, &item.IsGame, &item.Status, &item.ReportCount, &item.LastReportedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, item *domain.Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO denylist_items (app_name, is_game, status, report_count, last_reported_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (app_name) DO UPDATE SET
			is_game = EXCLUDED.is_game,
			status = EXCLUDED.status,
			report_count = EXCLUDED.report_count,
			last_reported_at = EXCLUDED.last_reported_at`,
		item.AppName, item.IsGame, item.Status, item.ReportCount, item.LastReportedAt)
	return err
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT app_name, is_game, status, report_count, last_reported_at
		FROM denylist_items ORDER BY report_count DESC, app_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.AppName, &item.IsGame, &item.Status, &item.ReportCount, &item.LastReportedAt); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, appName string, status domain.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE denylist_items SET status = $2 WHERE app_name = $1`, appName, status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, appName string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM denylist_items WHERE app_name = $1`, appName)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
