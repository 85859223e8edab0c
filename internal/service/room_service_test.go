package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/MadickAngeCesar/MessagingApp/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRoomService(t *testing.T) (*sql.DB, sqlmock.Sqlmock, RoomService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	usersRepo := repository.NewPostgresUsersRepository(db, zap.NewNop())
	roomsRepo := repository.NewPostgresRoomsRepository(db, zap.NewNop())
	svc := NewRoomService(roomsRepo, usersRepo, zap.NewNop())
	return db, mock, svc
}

func TestAssignByTenantName_UnknownTenantReturnsFalse(t *testing.T) {
	db, mock, svc := setupRoomService(t)
	defer db.Close()

	// 租客解析失败：返回 false 且不触发 UPDATE，房间状态不变
	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("Alice").
		WillReturnError(sql.ErrNoRows)

	assigned, err := svc.AssignByTenantName(context.Background(), "3", "Alice")

	require.NoError(t, err)
	assert.False(t, assigned)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignByTenantName_RoomMissingReturnsFalse(t *testing.T) {
	db, mock, svc := setupRoomService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("Ann").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectExec(`UPDATE rooms SET tenant_id`).
		WithArgs(int64(2), "42").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assigned, err := svc.AssignByTenantName(context.Background(), "42", "Ann")

	require.NoError(t, err)
	assert.False(t, assigned)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignByTenantName_Success(t *testing.T) {
	db, mock, svc := setupRoomService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("Ann").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectExec(`UPDATE rooms SET tenant_id`).
		WithArgs(int64(2), "3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assigned, err := svc.AssignByTenantName(context.Background(), "3", "Ann")

	require.NoError(t, err)
	assert.True(t, assigned)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvision_Passthrough(t *testing.T) {
	db, mock, svc := setupRoomService(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO rooms`).
		WithArgs("1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO rooms`).
		WithArgs("2").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := svc.Provision(context.Background(), 2)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
