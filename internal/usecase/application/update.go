package application

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-marketplace/internal/audit"
	"github.com/BruksfildServices01/tutor-marketplace/internal/auth"
	domain "github.com/BruksfildServices01/tutor-marketplace/internal/domain/application"
	"github.com/BruksfildServices01/tutor-marketplace/internal/httperr"
	"github.com/BruksfildServices01/tutor-marketplace/internal/metrics"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

// Notifier hands a persisted notification task to the delivery pipeline.
type Notifier interface {
	Enqueue(ctx context.Context, task *models.NotificationTask) error
}

// ======================================================
// INPUT
// ======================================================

// UpdateApplicationInput carries only the fields the caller supplied; nil
// pointers leave the stored value alone.
type UpdateApplicationInput struct {
	Actor     auth.Identity
	AdminOnly bool

	ID uint

	Status *string

	ConfirmationText *string

	DemoInstructions *string
	DemoDate         *time.Time
	ClearDemoDate    bool
	DemoCompleted    *bool
	DemoFeedback     *string

	GuardianContactSent *bool

	Feedback         *string
	GuardianFeedback *string
	Notes            *string
	MediaFee         *float64
}

type UpdateApplicationResult struct {
	Application *models.Application
	EmailSent   bool
}

// ======================================================
// USE CASE
// ======================================================

type UpdateApplication struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
	clock    func() time.Time
}

func NewUpdateApplication(
	repo domain.Repository,
	notifier Notifier,
	audit *audit.Dispatcher,
	clock func() time.Time,
) *UpdateApplication {
	return &UpdateApplication{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		clock:    clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateApplication) Execute(
	ctx context.Context,
	in UpdateApplicationInput,
) (*UpdateApplicationResult, error) {

	ap, err := uc.repo.GetApplication(ctx, in.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("application_not_found")
	}
	if err != nil {
		return nil, err
	}

	if err := authorizeUpdate(in, ap); err != nil {
		return nil, err
	}

	now := uc.clock()
	oldStatus := ap.Status

	// --------------------------------------------------
	// Status
	// --------------------------------------------------
	changed := false
	if in.Status != nil {
		next, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}

		changed, err = domain.Transition(ap, next, now)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Auxiliary fields
	// --------------------------------------------------
	applyFields(ap, in, now)

	// --------------------------------------------------
	// Outbox task
	// --------------------------------------------------
	var task *models.NotificationTask
	if changed {
		task = buildTask(ap, oldStatus, in)
	}

	if err := uc.repo.SaveApplication(ctx, ap, task); err != nil {
		return nil, err
	}

	if task != nil {
		if err := uc.notifier.Enqueue(ctx, task); err != nil {
			log.Printf("[APPLICATION] enqueue notification %s: %v", task.UUID, err)
		}
	}

	// --------------------------------------------------
	// Metrics / audit
	// --------------------------------------------------
	action := "application_updated"
	if changed {
		action = "application_status_changed"
		metrics.StatusTransitions.WithLabelValues(oldStatus, ap.Status).Inc()
	}

	actorID := in.Actor.UserID
	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   action,
		Entity:   "application",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from":       oldStatus,
			"to":         ap.Status,
			"email_sent": task != nil,
		},
	})

	return &UpdateApplicationResult{
		Application: ap,
		EmailSent:   task != nil,
	}, nil
}

// authorizeUpdate lets admins change anything. The owning tutor may only
// withdraw and edit the confirmation text.
func authorizeUpdate(in UpdateApplicationInput, ap *models.Application) error {
	if in.Actor.IsAdmin() {
		return nil
	}
	if in.AdminOnly || !in.Actor.Owns(ap.TutorID) {
		return httperr.ErrBusiness("forbidden")
	}

	if in.Status != nil {
		next, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return err
		}
		if next != domain.StatusWithdrawn {
			return httperr.ErrBusiness("forbidden")
		}
	}

	if in.DemoInstructions != nil ||
		in.DemoDate != nil ||
		in.ClearDemoDate ||
		in.DemoCompleted != nil ||
		in.DemoFeedback != nil ||
		in.GuardianContactSent != nil ||
		in.Feedback != nil ||
		in.GuardianFeedback != nil ||
		in.Notes != nil ||
		in.MediaFee != nil {
		return httperr.ErrBusiness("forbidden")
	}

	return nil
}

func applyFields(ap *models.Application, in UpdateApplicationInput, now time.Time) {
	if in.ConfirmationText != nil {
		ap.ConfirmationText = *in.ConfirmationText
	}
	if in.DemoInstructions != nil {
		ap.DemoInstructions = *in.DemoInstructions
	}
	switch {
	case in.ClearDemoDate:
		ap.DemoDate = nil
	case in.DemoDate != nil:
		d := *in.DemoDate
		ap.DemoDate = &d
	}
	if in.DemoCompleted != nil {
		ap.DemoCompleted = *in.DemoCompleted
	}
	if in.DemoFeedback != nil {
		ap.DemoFeedback = *in.DemoFeedback
	}
	if in.GuardianContactSent != nil {
		domain.MarkGuardianContactSent(ap, *in.GuardianContactSent, now)
	}
	if in.Feedback != nil {
		ap.Feedback = *in.Feedback
	}
	if in.GuardianFeedback != nil {
		ap.GuardianFeedback = *in.GuardianFeedback
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.MediaFee != nil {
		ap.MediaFee = *in.MediaFee
	}
}

// buildTask returns nil when no recipient address can be resolved.
func buildTask(ap *models.Application, oldStatus string, in UpdateApplicationInput) *models.NotificationTask {
	email, name := recipient(ap)
	if email == "" {
		return nil
	}

	return &models.NotificationTask{
		UUID:          uuid.NewString(),
		ApplicationID: ap.ID,
		Channel:       models.ChannelEmail,
		Recipient:     email,
		RecipientName: name,
		Status:        models.NotificationPending,
		Payload: datatypes.NewJSONType(models.StatusChangePayload{
			TutorEmail: email,
			TutorName:  name,
			Tuition: models.TuitionSummary{
				Code:     ap.Tuition.Code,
				Class:    ap.Tuition.Class,
				Subject:  ap.Tuition.Subject,
				Location: ap.Tuition.Location,
				Salary:   ap.Tuition.Salary,
			},
			OldStatus: oldStatus,
			NewStatus: ap.Status,
			Message:   statusMessage(in),
		}),
	}
}

// recipient prefers the registered tutor's account over guest contact data.
func recipient(ap *models.Application) (email, name string) {
	if ap.Tutor != nil && strings.TrimSpace(ap.Tutor.Email) != "" {
		return strings.TrimSpace(ap.Tutor.Email), ap.Tutor.Name
	}
	return strings.TrimSpace(ap.GuestEmail), ap.GuestName
}

func statusMessage(in UpdateApplicationInput) string {
	if in.GuardianFeedback != nil && strings.TrimSpace(*in.GuardianFeedback) != "" {
		return *in.GuardianFeedback
	}
	if in.Feedback != nil {
		return *in.Feedback
	}
	return ""
}
