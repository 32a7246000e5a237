package application

import (
	"github.com/BruksfildServices01/tutor-marketplace/internal/httperr"
)

// ===============================
// Application Status
// ===============================

type Status string

const (
	StatusPending             Status = "pending"
	StatusSelectedForDemo     Status = "selected-for-demo"
	StatusConfirmedFeePending Status = "confirmed-fee-pending"
	StatusCompleted           Status = "completed"
	StatusRejected            Status = "rejected"
	StatusWithdrawn           Status = "withdrawn"
)

// older clients send "confirmed" for the fee-pending stage
const legacyConfirmed = "confirmed"

var transitions = map[Status][]Status{
	StatusPending: {
		StatusSelectedForDemo,
		StatusConfirmedFeePending,
		StatusRejected,
		StatusWithdrawn,
	},
	StatusSelectedForDemo: {
		StatusConfirmedFeePending,
		StatusRejected,
		StatusWithdrawn,
	},
	StatusConfirmedFeePending: {
		StatusCompleted,
		StatusRejected,
		StatusWithdrawn,
	},
}

var labels = map[Status]string{
	StatusPending:             "Pending review",
	StatusSelectedForDemo:     "Selected for demo class",
	StatusConfirmedFeePending: "Confirmed (media fee pending)",
	StatusCompleted:           "Completed",
	StatusRejected:            "Rejected",
	StatusWithdrawn:           "Withdrawn",
}

func InitialStatus() Status {
	return StatusPending
}

func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) IsKnown() bool {
	_, ok := labels[s]
	return ok
}

// IsFinal reports whether no transition leaves s.
func (s Status) IsFinal() bool {
	return len(transitions[s]) == 0
}

// ParseStatus maps raw client input onto a known status. Matching is exact;
// only the legacy "confirmed" alias is rewritten.
func ParseStatus(raw string) (Status, error) {
	s := normalize(raw)
	if !s.IsKnown() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return s, nil
}

// AllowedTargets lists the statuses reachable from current.
func AllowedTargets(current Status) []Status {
	out := make([]Status, len(transitions[normalize(string(current))]))
	copy(out, transitions[normalize(string(current))])
	return out
}

// CanTransition validates a move between two different statuses.
func CanTransition(from, to Status) error {
	from = normalize(string(from))
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_status_transition")
}

func normalize(raw string) Status {
	if raw == legacyConfirmed {
		return StatusConfirmedFeePending
	}
	return Status(raw)
}
