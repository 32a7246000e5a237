package application

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-marketplace/internal/audit"
	"github.com/BruksfildServices01/tutor-marketplace/internal/auth"
	domain "github.com/BruksfildServices01/tutor-marketplace/internal/domain/application"
	"github.com/BruksfildServices01/tutor-marketplace/internal/httperr"
)

type DeleteApplication struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteApplication(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteApplication {
	return &DeleteApplication{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteApplication) Execute(
	ctx context.Context,
	actor auth.Identity,
	id uint,
) error {

	ap, err := uc.repo.GetApplication(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("application_not_found")
	}
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && !actor.Owns(ap.TutorID) {
		return httperr.ErrBusiness("forbidden")
	}

	if err := uc.repo.DeleteApplication(ctx, ap); err != nil {
		return err
	}

	actorID := actor.UserID
	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "application_deleted",
		Entity:   "application",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"tuition_id": ap.TuitionID,
			"status":     ap.Status,
		},
	})

	return nil
}
