package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/MadickAngeCesar/MessagingApp/internal/domain"

	"go.uber.org/zap"
)

// PostgresRoomsRepository 房间 Repository 实现
type PostgresRoomsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresRoomsRepository 创建房间 Repository
func NewPostgresRoomsRepository(db *sql.DB, logger *zap.Logger) *PostgresRoomsRepository {
	return &PostgresRoomsRepository{db: db, logger: logger}
}

var _ RoomsRepository = (*PostgresRoomsRepository)(nil)

// ProvisionUpTo 确保 1..total 号房间存在
// 只增不减：现有房间数少于 total 才补插缺口，单事务内完成；
// 已有房间不改号不删除
func (r *PostgresRoomsRepository) ProvisionUpTo(ctx context.Context, total int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count rooms: %w", err)
	}

	for i := count + 1; i <= total; i++ {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO rooms (room_number)
			VALUES ($1)
			ON CONFLICT (room_number) DO NOTHING
		`, strconv.Itoa(i)); err != nil {
			return fmt.Errorf("failed to insert room %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AssignTenant 按房间号落位租客
// 返回 false 表示房间号不存在（影响行数为 0），不是错误
func (r *PostgresRoomsRepository) AssignTenant(ctx context.Context, roomNumber string, tenantID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET tenant_id = $1 WHERE room_number = $2`,
		tenantID, roomNumber,
	)
	if err != nil {
		return false, fmt.Errorf("failed to assign tenant to room: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListRooms 全部房间，按房间号数值序
func (r *PostgresRoomsRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, room_number, tenant_id
		FROM rooms
		ORDER BY CAST(room_number AS INTEGER)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	result := []domain.Room{}
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.RoomNumber, &room.TenantID); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		result = append(result, room)
	}
	return result, rows.Err()
}
