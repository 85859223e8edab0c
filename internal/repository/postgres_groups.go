package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MadickAngeCesar/MessagingApp/internal/domain"

	"go.uber.org/zap"
)

// PostgresGroupsRepository 群组 Repository 实现
type PostgresGroupsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresGroupsRepository 创建群组 Repository
func NewPostgresGroupsRepository(db *sql.DB, logger *zap.Logger) *PostgresGroupsRepository {
	return &PostgresGroupsRepository{db: db, logger: logger}
}

var _ GroupsRepository = (*PostgresGroupsRepository)(nil)

// CreateGroup 无条件插入；"一个 owner 至多一个群组" 的约定
// 由注册引导路径的先查后插保证，此处不重复检查
func (r *PostgresGroupsRepository) CreateGroup(ctx context.Context, name string, ownerID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO groups (name, owner_id) VALUES ($1, $2) RETURNING id`,
		name, ownerID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert group: %w", err)
	}
	return id, nil
}

// AddMember 幂等添加成员：复合主键冲突静默跳过
func (r *PostgresGroupsRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

// Members 成员清单 (user_id, name)，无序集合语义
func (r *PostgresGroupsRepository) Members(ctx context.Context, groupID int64) ([]GroupMemberRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.name
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	members := []GroupMemberRow{}
	for rows.Next() {
		var m GroupMemberRow
		var name sql.NullString
		if err := rows.Scan(&m.UserID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		if name.Valid {
			m.Name = name.String
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GroupForOwner owner 名下群组 id；没有则 domain.ErrNotFound
func (r *PostgresGroupsRepository) GroupForOwner(ctx context.Context, ownerID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM groups WHERE owner_id = $1`, ownerID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query group by owner: %w", err)
	}
	return id, nil
}

// ListGroups 全部群组 (id, name)，存储层自然序
func (r *PostgresGroupsRepository) ListGroups(ctx context.Context) ([]GroupRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM groups`)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []GroupRow{}
	for rows.Next() {
		var g GroupRow
		var name sql.NullString
		if err := rows.Scan(&g.ID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		if name.Valid {
			g.Name = name.String
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
