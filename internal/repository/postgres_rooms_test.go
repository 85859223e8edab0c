package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRoomsMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresRoomsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostgresRoomsRepository(db, zap.NewNop())
	return db, mock, repo
}

func TestProvisionUpTo_FillsGap(t *testing.T) {
	db, mock, repo := setupRoomsMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`INSERT INTO rooms`).
		WithArgs("3").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec(`INSERT INTO rooms`).
		WithArgs("4").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	err := repo.ProvisionUpTo(context.Background(), 4)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionUpTo_NeverShrinks(t *testing.T) {
	db, mock, repo := setupRoomsMockDB(t)
	defer db.Close()

	// 已有 5 间、请求 3 间：不插入任何行
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectCommit()

	err := repo.ProvisionUpTo(context.Background(), 3)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTenant_RoomMissing(t *testing.T) {
	db, mock, repo := setupRoomsMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE rooms SET tenant_id`).
		WithArgs(int64(2), "42").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assigned, err := repo.AssignTenant(context.Background(), "42", 2)

	require.NoError(t, err)
	assert.False(t, assigned)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTenant_Success(t *testing.T) {
	db, mock, repo := setupRoomsMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE rooms SET tenant_id`).
		WithArgs(int64(2), "3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assigned, err := repo.AssignTenant(context.Background(), "3", 2)

	require.NoError(t, err)
	assert.True(t, assigned)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRooms_NumericOrder(t *testing.T) {
	db, mock, repo := setupRoomsMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "room_number", "tenant_id"}).
		AddRow(int64(2), "2", nil).
		AddRow(int64(10), "10", int64(5))

	mock.ExpectQuery(`ORDER BY CAST\(room_number AS INTEGER\)`).
		WillReturnRows(rows)

	rooms, err := repo.ListRooms(context.Background())

	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "2", rooms[0].RoomNumber)
	assert.False(t, rooms[0].TenantID.Valid)
	assert.Equal(t, "10", rooms[1].RoomNumber)
	require.True(t, rooms[1].TenantID.Valid)
	assert.Equal(t, int64(5), rooms[1].TenantID.Int64)

	assert.NoError(t, mock.ExpectationsWereMet())
}
