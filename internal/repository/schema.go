package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// 逻辑模式即持久化契约：五张业务表，列名与类型对外可见。
// messages 有意不建外键 —— 追加操作不校验 sender/recipient 存在，
// 悬空 id 在读路径跳过
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id          BIGSERIAL PRIMARY KEY,
		phone       TEXT UNIQUE NOT NULL,
		name        TEXT,
		profile_pic TEXT,
		role        TEXT NOT NULL,
		landlord_id BIGINT,
		password    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS groups (
		id       BIGSERIAL PRIMARY KEY,
		name     TEXT,
		owner_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS group_members (
		group_id BIGINT NOT NULL,
		user_id  BIGINT NOT NULL,
		PRIMARY KEY (group_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id           BIGSERIAL PRIMARY KEY,
		sender_id    BIGINT,
		recipient_id BIGINT,
		content      TEXT,
		timestamp    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS statuses (
		id        BIGSERIAL PRIMARY KEY,
		user_id   BIGINT,
		status    TEXT,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id          BIGSERIAL PRIMARY KEY,
		room_number TEXT UNIQUE,
		tenant_id   BIGINT
	)`,
}

// Migrate 建表（幂等）
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
