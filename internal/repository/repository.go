package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/MadickAngeCesar/MessagingApp/internal/domain"
)

// RegisterOutcome 按手机号注册/登录的存储层结果
// IsNew=true 表示本次调用插入了新行（房东新账号会在同一事务内
// 完成默认群组引导）；IsNew=false 表示手机号已存在，返回既有行，
// StoredPassword 供上层做房东口令比对
type RegisterOutcome struct {
	UserID         int64
	IsNew          bool
	StoredPassword sql.NullString
	GroupID        int64 // 新房东引导出的群组 ID（仅 IsNew 且 landlord）
}

// UsersRepository 用户身份存储
type UsersRepository interface {
	// RegisterUser 先插入、唯一键冲突则回退查询。并发首次注册的
	// 去重完全依赖该机制；整个调用（含房东群组引导）在单事务内完成
	RegisterUser(ctx context.Context, u *domain.User) (*RegisterOutcome, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*domain.User, error)
	// UpdateProfile 部分更新：空字段不写
	UpdateProfile(ctx context.Context, userID int64, name, profilePic string) error
	// FindTenantIDByName 按展示名解析租客，同名取最小 id
	FindTenantIDByName(ctx context.Context, name string) (int64, error)
}

// GroupMemberRow 群组成员行 (user_id, name)
type GroupMemberRow struct {
	UserID int64
	Name   string
}

// GroupRow 群组清单行 (id, name)
type GroupRow struct {
	ID   int64
	Name string
}

// GroupsRepository 群组与成员存储
type GroupsRepository interface {
	CreateGroup(ctx context.Context, name string, ownerID int64) (int64, error)
	// AddMember 幂等：重复添加静默跳过
	AddMember(ctx context.Context, groupID, userID int64) error
	Members(ctx context.Context, groupID int64) ([]GroupMemberRow, error)
	GroupForOwner(ctx context.Context, ownerID int64) (int64, error)
	ListGroups(ctx context.Context) ([]GroupRow, error)
}

// ConversationRow 会话条目 (timestamp, content, 发送者展示名)
type ConversationRow struct {
	Timestamp  time.Time
	Content    string
	SenderName string
}

// MessagesRepository 消息存储（仅追加）
type MessagesRepository interface {
	// Append 纯插入，不校验 sender/recipient 是否存在
	Append(ctx context.Context, senderID, recipientID int64, content string) error
	// ConversationBetween 双向对称谓词，按时间升序（同刻按 id）
	ConversationBetween(ctx context.Context, userID, partnerID int64) ([]ConversationRow, error)
	// PartnerIDs 与 userID 有过消息往来的对端 id 集合（去重）
	PartnerIDs(ctx context.Context, userID int64) ([]int64, error)
}

// StatusRow 动态条目 (timestamp, status, 作者展示名)
type StatusRow struct {
	Timestamp  time.Time
	Status     string
	AuthorName string
}

// StatusesRepository 房东动态存储（仅追加）
type StatusesRepository interface {
	Post(ctx context.Context, userID int64, status string) error
	// TimelineOf 单作者时间线，时间降序
	TimelineOf(ctx context.Context, authorID int64) ([]StatusRow, error)
}

// RoomsRepository 房间台账存储
type RoomsRepository interface {
	// ProvisionUpTo 确保 1..total 号房间存在，只增不减
	ProvisionUpTo(ctx context.Context, total int) error
	// AssignTenant 按房间号落位；房间不存在返回 false
	AssignTenant(ctx context.Context, roomNumber string, tenantID int64) (bool, error)
	// ListRooms 按房间号数值序
	ListRooms(ctx context.Context) ([]domain.Room, error)
}
