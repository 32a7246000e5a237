package application

import (
	"context"

	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

type ListFilter struct {
	TutorID   *uint
	TuitionID *uint
	Status    string

	Limit  int
	Offset int
}

type Repository interface {
	// -------- Tuition / Tutor --------
	GetTuitionByID(
		ctx context.Context,
		id uint,
	) (*models.Tuition, error)

	GetTuitionByCode(
		ctx context.Context,
		code string,
	) (*models.Tuition, error)

	GetTutorByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Application (create / duplicate) --------
	HasApplied(
		ctx context.Context,
		tutorID uint,
		tuitionID uint,
	) (bool, error)

	// CreateApplication inserts ap and appends its reference to the tuition.
	CreateApplication(
		ctx context.Context,
		ap *models.Application,
	) error

	// -------- Application (read) --------
	GetApplication(
		ctx context.Context,
		id uint,
	) (*models.Application, error)

	ListApplications(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Application, int64, error)

	// -------- Application (state change) --------

	// SaveApplication persists ap and, when task is non-nil, the outbox row
	// announcing the change, atomically.
	SaveApplication(
		ctx context.Context,
		ap *models.Application,
		task *models.NotificationTask,
	) error

	DeleteApplication(
		ctx context.Context,
		ap *models.Application,
	) error
}
