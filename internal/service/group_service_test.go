package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/MadickAngeCesar/MessagingApp/internal/domain"
	"github.com/MadickAngeCesar/MessagingApp/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupGroupService(t *testing.T) (*sql.DB, sqlmock.Sqlmock, GroupService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	usersRepo := repository.NewPostgresUsersRepository(db, zap.NewNop())
	groupsRepo := repository.NewPostgresGroupsRepository(db, zap.NewNop())
	svc := NewGroupService(groupsRepo, usersRepo, zap.NewNop())
	return db, mock, svc
}

func TestCreateGroup_TenantActorRejectedBeforeInsert(t *testing.T) {
	db, mock, svc := setupGroupService(t)
	defer db.Close()

	// 只允许出现角色查询；未预期任何 INSERT，
	// ExpectationsWereMet 同时证明能力检查先于写操作
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(int64(2)).
		WillReturnRows(userRow(2, "555-0002", "Ann", nil, "tenant", int64(1), nil))

	_, err := svc.CreateGroup(context.Background(), 2, "Ann's group")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGroup_LandlordActor(t *testing.T) {
	db, mock, svc := setupGroupService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(int64(1)).
		WillReturnRows(userRow(1, "555-0001", "Bob", nil, "landlord", nil, "pw"))
	mock.ExpectQuery(`INSERT INTO groups`).
		WithArgs("Building B", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := svc.CreateGroup(context.Background(), 1, "Building B")

	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMember_TenantActorRejectedBeforeInsert(t *testing.T) {
	db, mock, svc := setupGroupService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(int64(2)).
		WillReturnRows(userRow(2, "555-0002", "Ann", nil, "tenant", int64(1), nil))

	err := svc.AddMember(context.Background(), 2, 10, 3)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMember_LandlordActor(t *testing.T) {
	db, mock, svc := setupGroupService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(int64(1)).
		WillReturnRows(userRow(1, "555-0001", "Bob", nil, "landlord", nil, "pw"))
	mock.ExpectExec(`INSERT INTO group_members`).
		WithArgs(int64(10), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.AddMember(context.Background(), 1, 10, 2)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupForOwner_Passthrough(t *testing.T) {
	db, mock, svc := setupGroupService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM groups WHERE owner_id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))

	id, err := svc.GroupForOwner(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(10), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}
