package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// PostgresMessagesRepository 消息 Repository 实现
type PostgresMessagesRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresMessagesRepository 创建消息 Repository
func NewPostgresMessagesRepository(db *sql.DB, logger *zap.Logger) *PostgresMessagesRepository {
	return &PostgresMessagesRepository{db: db, logger: logger}
}

var _ MessagesRepository = (*PostgresMessagesRepository)(nil)

// Append 追加一条消息，timestamp 由存储层赋值
// 不校验 sender/recipient 是否存在，悬空 id 由读路径处理
func (r *PostgresMessagesRepository) Append(ctx context.Context, senderID, recipientID int64, content string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (sender_id, recipient_id, content) VALUES ($1, $2, $3)`,
		senderID, recipientID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ConversationBetween 两人之间双向消息，时间升序
// 同一时刻的消息按 id 定序，保证 (A,B) 与 (B,A) 结果逐条一致
func (r *PostgresMessagesRepository) ConversationBetween(ctx context.Context, userID, partnerID int64) ([]ConversationRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.timestamp, m.content, u.name
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE (m.sender_id = $1 AND m.recipient_id = $2)
		   OR (m.sender_id = $2 AND m.recipient_id = $1)
		ORDER BY m.timestamp, m.id
	`, userID, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	defer rows.Close()

	entries := []ConversationRow{}
	for rows.Next() {
		var e ConversationRow
		var senderName sql.NullString
		if err := rows.Scan(&e.Timestamp, &e.Content, &senderName); err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}
		if senderName.Valid {
			e.SenderName = senderName.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PartnerIDs 触及 userID 的全部消息中对端 id 的去重集合
// 条件投影：自己是 sender 则对端取 recipient，反之取 sender
func (r *PostgresMessagesRepository) PartnerIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT
			CASE WHEN sender_id = $1 THEN recipient_id ELSE sender_id END AS partner_id
		FROM messages
		WHERE sender_id = $1 OR recipient_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation partners: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan partner id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
