package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/tutor-marketplace/internal/domain/application"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

type ApplicationGormRepository struct {
	db *gorm.DB
}

func NewApplicationGormRepository(db *gorm.DB) *ApplicationGormRepository {
	return &ApplicationGormRepository{db: db}
}

// --------------------------------------------------
// Tuition / Tutor
// --------------------------------------------------

func (r *ApplicationGormRepository) GetTuitionByID(
	ctx context.Context,
	id uint,
) (*models.Tuition, error) {

	var tuition models.Tuition
	if err := r.db.WithContext(ctx).First(&tuition, id).Error; err != nil {
		return nil, err
	}
	return &tuition, nil
}

func (r *ApplicationGormRepository) GetTuitionByCode(
	ctx context.Context,
	code string,
) (*models.Tuition, error) {

	var tuition models.Tuition
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&tuition).Error; err != nil {
		return nil, err
	}
	return &tuition, nil
}

func (r *ApplicationGormRepository) GetTutorByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, "tutor").
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Application (create)
// --------------------------------------------------

func (r *ApplicationGormRepository) HasApplied(
	ctx context.Context,
	tutorID uint,
	tuitionID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("tutor_id = ? AND tuition_id = ?", tutorID, tuitionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ApplicationGormRepository) CreateApplication(
	ctx context.Context,
	ap *models.Application,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			return err
		}

		var tuition models.Tuition
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tuition, ap.TuitionID).Error; err != nil {
			return err
		}

		refs := append(tuition.Applications, models.ApplicationRef{
			ApplicationID: ap.ID,
			TutorID:       ap.TutorID,
			GuestName:     ap.GuestName,
			AppliedAt:     ap.AppliedAt,
		})

		return tx.Model(&tuition).
			Update("applications", refs).Error
	})
}

// --------------------------------------------------
// Application (read)
// --------------------------------------------------

func (r *ApplicationGormRepository) GetApplication(
	ctx context.Context,
	id uint,
) (*models.Application, error) {

	var ap models.Application
	if err := r.db.WithContext(ctx).
		Preload("Tutor").
		Preload("Tuition").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ApplicationGormRepository) ListApplications(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Application, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Application{})

	if filter.TutorID != nil {
		q = q.Where("tutor_id = ?", *filter.TutorID)
	}
	if filter.TuitionID != nil {
		q = q.Where("tuition_id = ?", *filter.TuitionID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var apps []models.Application
	if err := q.
		Preload("Tutor").
		Preload("Tuition").
		Order("applied_at DESC").
		Order("id DESC").
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// --------------------------------------------------
// Application (state change)
// --------------------------------------------------

func (r *ApplicationGormRepository) SaveApplication(
	ctx context.Context,
	ap *models.Application,
	task *models.NotificationTask,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(ap).Error; err != nil {
			return err
		}
		if task == nil {
			return nil
		}
		return tx.Create(task).Error
	})
}

func (r *ApplicationGormRepository) DeleteApplication(
	ctx context.Context,
	ap *models.Application,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Application{}, ap.ID).Error; err != nil {
			return err
		}

		var tuition models.Tuition
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tuition, ap.TuitionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		refs := make(datatypes.JSONSlice[models.ApplicationRef], 0, len(tuition.Applications))
		for _, ref := range tuition.Applications {
			if ref.ApplicationID != ap.ID {
				refs = append(refs, ref)
			}
		}

		return tx.Model(&tuition).
			Update("applications", refs).Error
	})
}

// Compile-time check
var _ domain.Repository = (*ApplicationGormRepository)(nil)
