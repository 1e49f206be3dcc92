package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/repository"
)

func TestNotificationPostgres_ExistsForDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationPostgres(db)
	day := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("user-1", "document", "doc-1", "2026-03-15").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForDay(context.Background(), "user-1", "document", "doc-1", day)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationPostgres(db)
	now := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	n := &model.Notification{
		ID:         "n-1",
		UserID:     "user-1",
		Title:      "Document expiring soon",
		Message:    "msg",
		Category:   model.CategoryExpiring,
		EntityType: model.EntityTypeDocument,
		EntityID:   "doc-1",
		CreatedAt:  now,
		CreatedOn:  now,
	}

	t.Run("inserted", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO notifications (.+) ON CONFLICT").
			WithArgs("n-1", "user-1", n.Title, "msg", model.CategoryExpiring, "document", "doc-1", false, now, "2026-03-15").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Create(context.Background(), n)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("conflict", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Create(context.Background(), n)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnError(errors.New("fk violation"))

		ok, err := repo.Create(context.Background(), n)

		assert.Error(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationPostgres_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationPostgres(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notifications").
		WithArgs("user-1", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM notifications (.+) ORDER BY").
		WithArgs("user-1", true, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "message", "category", "entity_type", "entity_id", "is_read", "created_at"}).
			AddRow("n-1", "user-1", "t", "m", model.CategoryPenalty, "document", "doc-1", false, now))

	res, err := repo.ListByUser(context.Background(), "user-1", true, repository.PageQuery{Limit: 10, Offset: 0})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, model.CategoryPenalty, res.Items[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationPostgres_MarkRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationPostgres(db)

	mock.ExpectExec("UPDATE notifications SET is_read = true").
		WithArgs("n-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE notifications SET is_read = true").
		WithArgs("n-2", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.MarkRead(context.Background(), "n-1", "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkRead(context.Background(), "n-2", "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}
