package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
	"github.com/BruksfildServices01/tutor-marketplace/internal/notify"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) GetTask(
	ctx context.Context,
	id uint,
) (*models.NotificationTask, error) {

	var task models.NotificationTask
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *NotificationGormRepository) MarkSent(
	ctx context.Context,
	id uint,
	at time.Time,
) error {

	return r.db.WithContext(ctx).
		Model(&models.NotificationTask{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     models.NotificationSent,
			"attempts":   gorm.Expr("attempts + 1"),
			"sent_at":    at,
			"last_error": "",
		}).Error
}

func (r *NotificationGormRepository) MarkFailed(
	ctx context.Context,
	id uint,
	reason string,
) error {

	return r.db.WithContext(ctx).
		Model(&models.NotificationTask{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     models.NotificationFailed,
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		}).Error
}

func (r *NotificationGormRepository) ListRetryable(
	ctx context.Context,
	maxAttempts int,
	idleSince time.Time,
	limit int,
) ([]models.NotificationTask, error) {

	var tasks []models.NotificationTask
	if err := r.db.WithContext(ctx).
		Where(
			"status IN ? AND attempts < ? AND updated_at < ?",
			[]string{models.NotificationPending, models.NotificationFailed},
			maxAttempts,
			idleSince,
		).
		Order("id ASC").
		Limit(limit).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Compile-time check
var _ notify.TaskStore = (*NotificationGormRepository)(nil)
