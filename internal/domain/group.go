package domain

// Group 群组领域模型（对应 groups 表）
// 每个房东恰好一个群组，注册时自动创建
type Group struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	OwnerID int64  `db:"owner_id"` // users.id, role=landlord
}

// GroupMember 群组成员（对应 group_members 表）
// 复合主键 (group_id, user_id)，集合语义，重复插入为 no-op
type GroupMember struct {
	GroupID int64 `db:"group_id"`
	UserID  int64 `db:"user_id"`
}
