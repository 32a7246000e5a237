package application

import (
	"time"

	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to next and stamps the matching milestone the first
// time it is reached. Requesting the current status changes nothing.
func Transition(ap *models.Application, next Status, now time.Time) (bool, error) {
	current := normalize(ap.Status)
	if current == next {
		return false, nil
	}

	if err := CanTransition(current, next); err != nil {
		return false, err
	}

	ap.Status = string(next)
	stampMilestone(ap, next, now)
	return true, nil
}

func stampMilestone(ap *models.Application, next Status, now time.Time) {
	switch next {
	case StatusSelectedForDemo, StatusConfirmedFeePending:
		if ap.ConfirmedAt == nil {
			ap.ConfirmedAt = &now
		}
	case StatusCompleted:
		if ap.CompletedAt == nil {
			ap.CompletedAt = &now
		}
	case StatusRejected:
		if ap.RejectedAt == nil {
			ap.RejectedAt = &now
		}
	}
}

// MarkGuardianContactSent records the relay of guardian contact details.
// The timestamp keeps the first relay.
func MarkGuardianContactSent(ap *models.Application, sent bool, now time.Time) {
	ap.GuardianContactSent = sent
	if sent && ap.GuardianContactSentAt == nil {
		ap.GuardianContactSentAt = &now
	}
}
