package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func sampleTransfer() *Transfer {
	return &Transfer{
		ID:         "8f4c8f34-9f20-4a56-9c65-9b2c35b3f3a1",
		FileName:   "payload.txt",
		Size:       12,
		Checksum:   "6f5902ac237024bdd0c176cb93063dc4",
		MediaType:  "text/plain; charset=utf-8",
		RemoteAddr: "127.0.0.1:52110",
		ReceivedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreate_InsertsAndPrunesInOneTx(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	tr := sampleTransfer()

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+transfers\b`).
		WithArgs(tr.ID, tr.FileName, tr.Size, tr.Checksum, tr.MediaType, tr.RemoteAddr, tr.ReceivedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`(?s)DELETE\s+FROM\s+transfers`).
		WithArgs(retentionKeep).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), tr))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBErrorRollsBack(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT\s+INTO\s+transfers`).
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), sampleTransfer())
	assert.ErrorContains(t, err, "db error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_WrongRowsAffected(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	tr := sampleTransfer()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT\s+INTO\s+transfers`).
		WithArgs(tr.ID, tr.FileName, tr.Size, tr.Checksum, tr.MediaType, tr.RemoteAddr, tr.ReceivedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), tr)
	assert.ErrorContains(t, err, "unexpected rows affected")
}

func TestCreate_PruneErrorRollsBack(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	tr := sampleTransfer()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT\s+INTO\s+transfers`).
		WithArgs(tr.ID, tr.FileName, tr.Size, tr.Checksum, tr.MediaType, tr.RemoteAddr, tr.ReceivedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+transfers`).
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), tr)
	assert.ErrorContains(t, err, "prune error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectRecent(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	tr := sampleTransfer()

	rows := sqlmock.NewRows([]string{"id", "file_name", "size", "checksum", "media_type", "remote_addr", "received_at"}).
		AddRow(tr.ID, tr.FileName, tr.Size, tr.Checksum, tr.MediaType, tr.RemoteAddr, tr.ReceivedAt)

	mock.ExpectQuery(`(?s)SELECT\s+.*FROM\s+transfers\s+ORDER\s+BY\s+received_at\s+DESC`).
		WithArgs(10).
		WillReturnRows(rows)

	got, err := repo.SelectRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tr.FileName, got[0].FileName)
	assert.Equal(t, tr.Checksum, got[0].Checksum)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectRecent_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("boom"))

	_, err := repo.SelectRecent(context.Background(), 5)
	assert.Error(t, err)
}
