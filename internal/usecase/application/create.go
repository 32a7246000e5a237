package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-marketplace/internal/audit"
	"github.com/BruksfildServices01/tutor-marketplace/internal/auth"
	domain "github.com/BruksfildServices01/tutor-marketplace/internal/domain/application"
	"github.com/BruksfildServices01/tutor-marketplace/internal/domain/tuition"
	"github.com/BruksfildServices01/tutor-marketplace/internal/httperr"
	"github.com/BruksfildServices01/tutor-marketplace/internal/metrics"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateApplicationInput struct {
	Actor auth.Identity

	TuitionID uint

	// Guest applicant
	Name       string
	Phone      string
	Email      string
	Experience string
	Message    string

	AgreedToTerms    bool
	ConfirmationText string
}

// ======================================================
// USE CASE
// ======================================================

type CreateApplication struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock func() time.Time
}

func NewCreateApplication(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock func() time.Time,
) *CreateApplication {
	return &CreateApplication{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateApplication) Execute(
	ctx context.Context,
	in CreateApplicationInput,
) (*models.Application, error) {

	if in.TuitionID == 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	// --------------------------------------------------
	// Tuition must be accepting applications
	// --------------------------------------------------
	tu, err := uc.repo.GetTuitionByID(ctx, in.TuitionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("tuition_not_found")
	}
	if err != nil {
		return nil, err
	}

	if !tuition.AcceptsApplications(tu.Status) {
		return nil, httperr.ErrBusiness("tuition_unavailable")
	}

	ap := &models.Application{
		Status:           string(domain.InitialStatus()),
		TuitionID:        tu.ID,
		AgreedToTerms:    in.AgreedToTerms,
		ConfirmationText: strings.TrimSpace(in.ConfirmationText),
		AppliedAt:        uc.clock(),
	}

	// --------------------------------------------------
	// Registered tutor or guest
	// --------------------------------------------------
	kind := "guest"
	if in.Actor.IsTutor() {
		kind = "tutor"

		if !in.AgreedToTerms {
			return nil, httperr.ErrBusiness("terms_not_accepted")
		}

		tutor, err := uc.repo.GetTutorByID(ctx, in.Actor.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("tutor_not_found")
		}
		if err != nil {
			return nil, err
		}

		applied, err := uc.repo.HasApplied(ctx, tutor.ID, tu.ID)
		if err != nil {
			return nil, err
		}
		if applied {
			return nil, httperr.ErrBusiness("already_applied")
		}

		ap.TutorID = &tutor.ID
		ap.Tutor = tutor
	} else {
		name := strings.TrimSpace(in.Name)
		phone := strings.TrimSpace(in.Phone)
		if name == "" || phone == "" {
			return nil, httperr.ErrBusiness("missing_fields")
		}

		ap.GuestName = name
		ap.GuestPhone = phone
		ap.GuestEmail = strings.ToLower(strings.TrimSpace(in.Email))
		ap.GuestExperience = strings.TrimSpace(in.Experience)
		ap.GuestMessage = strings.TrimSpace(in.Message)
	}

	// --------------------------------------------------
	// Persist (application + tuition reference)
	// --------------------------------------------------
	if err := uc.repo.CreateApplication(ctx, ap); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, httperr.ErrBusiness("already_applied")
		}
		return nil, err
	}
	ap.Tuition = *tu

	metrics.ApplicationsCreated.WithLabelValues(kind).Inc()

	var actorID *uint
	if in.Actor.IsAuthenticated() {
		id := in.Actor.UserID
		actorID = &id
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "application_created",
		Entity:   "application",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"tuition_id": tu.ID,
			"kind":       kind,
		},
	})

	return ap, nil
}
