package domain

import (
	"database/sql"
)

// Room 房间领域模型（对应 rooms 表）
// room_number 以文本存储但按数值序排列；tenant_id 可空，
// 批量预置后房间只增不减，仅 tenant_id 可变
type Room struct {
	ID         int64          `db:"id"`
	RoomNumber string         `db:"room_number"` // UNIQUE
	TenantID   sql.NullInt64  `db:"tenant_id"`   // nullable
}
