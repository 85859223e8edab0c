package domain

import "time"

// Status 房东动态领域模型（对应 statuses 表）
// 仅追加；房东本人与其名下全部租客可读
type Status struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"` // 作者，role=landlord
	Status    string    `db:"status"`
	Timestamp time.Time `db:"timestamp"`
}
