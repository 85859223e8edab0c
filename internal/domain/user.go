package domain

import (
	"database/sql"
)

// 角色常量（users.role 的合法取值）
const (
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

// User 用户领域模型（对应 users 表）
// phone 是全局唯一的自然键；password 仅 landlord 持有（明文比较，
// 来源系统的已知缺陷，按契约保留，不做哈希加固）
type User struct {
	ID         int64          `db:"id"`
	Phone      string         `db:"phone"` // UNIQUE NOT NULL
	Name       string         `db:"name"`
	ProfilePic sql.NullString `db:"profile_pic"` // nullable, 头像路径/URI
	Role       string         `db:"role"`        // landlord | tenant
	LandlordID sql.NullInt64  `db:"landlord_id"` // 仅 tenant 持有
	Password   sql.NullString `db:"password"`    // 仅 landlord 持有
}

// IsLandlord 是否房东角色
func (u *User) IsLandlord() bool {
	return u.Role == RoleLandlord
}

// IsTenant 是否租客角色
func (u *User) IsTenant() bool {
	return u.Role == RoleTenant
}
