package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MadickAngeCesar/MessagingApp/internal/domain"

	"go.uber.org/zap"
)

// PostgresUsersRepository 用户 Repository 实现
type PostgresUsersRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresUsersRepository 创建用户 Repository
func NewPostgresUsersRepository(db *sql.DB, logger *zap.Logger) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db, logger: logger}
}

// 确保实现了接口
var _ UsersRepository = (*PostgresUsersRepository)(nil)

const userColumns = `id, phone, name, profile_pic, role, landlord_id, password`

// RegisterUser 按手机号注册或命中既有账号
//
// 整个流程在单事务内完成（注册 + 房东群组引导原子化）：
//  1. INSERT ... ON CONFLICT (phone) DO NOTHING RETURNING id
//     —— 先插入、冲突回退查询，是并发重复注册的唯一防线；
//     用 conflict 子句而非捕获 23505，避免唯一键冲突中止当前事务
//  2. 未返回行 ⇒ 手机号已存在，同一事务内查出 (id, password)
//  3. 新建的房东账号 ⇒ 查一遍 owner 名下群组，没有则建
//     "Group of {name}" 并把房东本人加为成员
func (r *PostgresUsersRepository) RegisterUser(ctx context.Context, u *domain.User) (*RegisterOutcome, error) {
	if u == nil {
		return nil, fmt.Errorf("user is required")
	}
	if u.Phone == "" {
		return nil, fmt.Errorf("phone is required")
	}
	if u.Role == "" {
		return nil, fmt.Errorf("role is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	toAnyString := func(ns sql.NullString) any {
		if ns.Valid {
			return ns.String
		}
		return nil
	}
	toAnyInt64 := func(ni sql.NullInt64) any {
		if ni.Valid {
			return ni.Int64
		}
		return nil
	}

	outcome := &RegisterOutcome{}

	var userID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (phone, name, password, role, landlord_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (phone) DO NOTHING
		RETURNING id
	`, u.Phone, u.Name, toAnyString(u.Password), u.Role, toAnyInt64(u.LandlordID)).Scan(&userID)
	switch {
	case err == nil:
		outcome.UserID = userID
		outcome.IsNew = true
	case err == sql.ErrNoRows:
		// 手机号冲突：回退查询既有行
		var storedPassword sql.NullString
		if err := tx.QueryRowContext(ctx,
			`SELECT id, password FROM users WHERE phone = $1`, u.Phone,
		).Scan(&userID, &storedPassword); err != nil {
			return nil, fmt.Errorf("failed to look up existing user: %w", err)
		}
		outcome.UserID = userID
		outcome.StoredPassword = storedPassword
	default:
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	// 房东新账号：引导默认群组（查一遍再建，owner 至多一个群组）
	if outcome.IsNew && u.Role == domain.RoleLandlord {
		var groupID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM groups WHERE owner_id = $1`, outcome.UserID,
		).Scan(&groupID)
		switch {
		case err == sql.ErrNoRows:
			groupName := fmt.Sprintf("Group of %s", u.Name)
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO groups (name, owner_id) VALUES ($1, $2) RETURNING id`,
				groupName, outcome.UserID,
			).Scan(&groupID); err != nil {
				return nil, fmt.Errorf("failed to create default group: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO group_members (group_id, user_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, groupID, outcome.UserID); err != nil {
				return nil, fmt.Errorf("failed to add owner membership: %w", err)
			}
		case err != nil:
			return nil, fmt.Errorf("failed to look up group by owner: %w", err)
		}
		outcome.GroupID = groupID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return outcome, nil
}

// GetUser 按 id 获取用户
func (r *PostgresUsersRepository) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// GetUserByPhone 按手机号获取用户
func (r *PostgresUsersRepository) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
	return scanUser(row)
}

// UpdateProfile 部分更新用户资料：空字段不写，无其他校验
func (r *PostgresUsersRepository) UpdateProfile(ctx context.Context, userID int64, name, profilePic string) error {
	updates := []string{}
	args := []any{userID}
	argIdx := 2

	if name != "" {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, name)
		argIdx++
	}
	if profilePic != "" {
		updates = append(updates, fmt.Sprintf("profile_pic = $%d", argIdx))
		args = append(args, profilePic)
		argIdx++
	}

	if len(updates) == 0 {
		return nil // 没有需要更新的字段
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $1`, strings.Join(updates, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// FindTenantIDByName 按展示名解析租客 id
// 同名租客取最小 id，保证解析结果确定
func (r *PostgresUsersRepository) FindTenantIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM users
		WHERE name = $1 AND role = 'tenant'
		ORDER BY id
		LIMIT 1
	`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve tenant by name: %w", err)
	}
	return id, nil
}

// scanUser 从单行扫描 User；无行时映射为 domain.ErrNotFound
func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var name sql.NullString
	err := row.Scan(
		&u.ID,
		&u.Phone,
		&name,
		&u.ProfilePic,
		&u.Role,
		&u.LandlordID,
		&u.Password,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if name.Valid {
		u.Name = name.String
	}
	return &u, nil
}
