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

func setupMessageService(t *testing.T) (*sql.DB, sqlmock.Sqlmock, MessageService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	usersRepo := repository.NewPostgresUsersRepository(db, zap.NewNop())
	messagesRepo := repository.NewPostgresMessagesRepository(db, zap.NewNop())
	svc := NewMessageService(messagesRepo, usersRepo, zap.NewNop())
	return db, mock, svc
}

func TestConversationPartners_ResolvesRecords(t *testing.T) {
	db, mock, svc := setupMessageService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT DISTINCT`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"partner_id"}).
			AddRow(int64(2)).
			AddRow(int64(3)))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(int64(2)).
		WillReturnRows(userRow(2, "555-0002", "Ann", nil, "tenant", int64(1), nil))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(int64(3)).
		WillReturnRows(userRow(3, "555-0003", "Carl", nil, "tenant", int64(1), nil))

	partners, err := svc.ConversationPartners(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, partners, 2)
	assert.Equal(t, "Ann", partners[0].Name)
	assert.Equal(t, "Carl", partners[1].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationPartners_SkipsDanglingIDs(t *testing.T) {
	db, mock, svc := setupMessageService(t)
	defer db.Close()

	// 消息表不设外键：对端 id 可能指向已不存在的账号，跳过即可
	mock.ExpectQuery(`SELECT DISTINCT`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"partner_id"}).
			AddRow(int64(2)).
			AddRow(int64(999)))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(int64(2)).
		WillReturnRows(userRow(2, "555-0002", "Ann", nil, "tenant", int64(1), nil))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	partners, err := svc.ConversationPartners(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, partners, 1)
	assert.Equal(t, "Ann", partners[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_Passthrough(t *testing.T) {
	db, mock, svc := setupMessageService(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO messages`).
		WithArgs(int64(1), int64(2), "[attachment] lease.pdf").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := svc.Append(context.Background(), 1, 2, "[attachment] lease.pdf")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
