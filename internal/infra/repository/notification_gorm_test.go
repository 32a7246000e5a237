package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
	"github.com/BruksfildServices01/tutor-marketplace/internal/testdb"
)

func seedTask(t *testing.T, db *gorm.DB, uuid, status string, attempts int, touched time.Time) *models.NotificationTask {
	t.Helper()
	task := &models.NotificationTask{
		UUID:      uuid,
		Channel:   models.ChannelEmail,
		Recipient: "tutor@example.com",
		Status:    status,
		Attempts:  attempts,
		CreatedAt: touched,
		UpdatedAt: touched,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestNotificationRepo_MarkSentAndFailed(t *testing.T) {
	db := testdb.Open(t)
	repo := repository.NewNotificationGormRepository(db)
	ctx := context.Background()

	task := seedTask(t, db, "a", models.NotificationPending, 0, time.Now().UTC())

	require.NoError(t, repo.MarkFailed(ctx, task.ID, "smtp down"))
	got, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationFailed, got.Status)
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, "smtp down", got.LastError)

	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkSent(ctx, task.ID, at))
	got, err = repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationSent, got.Status)
	assert.Equal(t, 2, got.Attempts)
	assert.Empty(t, got.LastError)
	require.NotNil(t, got.SentAt)
	assert.True(t, got.SentAt.Equal(at))
}

func TestNotificationRepo_ListRetryable(t *testing.T) {
	db := testdb.Open(t)
	repo := repository.NewNotificationGormRepository(db)

	old := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	fresh := time.Date(2024, 6, 1, 11, 59, 50, 0, time.UTC)
	cutoff := time.Date(2024, 6, 1, 11, 59, 30, 0, time.UTC)

	stalePending := seedTask(t, db, "p1", models.NotificationPending, 0, old)
	staleFailed := seedTask(t, db, "f1", models.NotificationFailed, 2, old)
	seedTask(t, db, "f2", models.NotificationFailed, 5, old)
	seedTask(t, db, "s1", models.NotificationSent, 1, old)
	seedTask(t, db, "p2", models.NotificationPending, 0, fresh)

	tasks, err := repo.ListRetryable(context.Background(), 5, cutoff, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, stalePending.ID, tasks[0].ID)
	assert.Equal(t, staleFailed.ID, tasks[1].ID)

	limited, err := repo.ListRetryable(context.Background(), 5, cutoff, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
