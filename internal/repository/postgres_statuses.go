package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// PostgresStatusesRepository 动态 Repository 实现
type PostgresStatusesRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStatusesRepository 创建动态 Repository
func NewPostgresStatusesRepository(db *sql.DB, logger *zap.Logger) *PostgresStatusesRepository {
	return &PostgresStatusesRepository{db: db, logger: logger}
}

var _ StatusesRepository = (*PostgresStatusesRepository)(nil)

// Post 追加一条动态，timestamp 由存储层赋值
func (r *PostgresStatusesRepository) Post(ctx context.Context, userID int64, status string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO statuses (user_id, status) VALUES ($1, $2)`,
		userID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert status: %w", err)
	}
	return nil
}

// TimelineOf 单作者全部动态，时间降序（最新在前）
func (r *PostgresStatusesRepository) TimelineOf(ctx context.Context, authorID int64) ([]StatusRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.timestamp, s.status, u.name
		FROM statuses s
		JOIN users u ON s.user_id = u.id
		WHERE u.id = $1
		ORDER BY s.timestamp DESC
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status timeline: %w", err)
	}
	defer rows.Close()

	entries := []StatusRow{}
	for rows.Next() {
		var e StatusRow
		var authorName sql.NullString
		if err := rows.Scan(&e.Timestamp, &e.Status, &authorName); err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		if authorName.Valid {
			e.AuthorName = authorName.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
