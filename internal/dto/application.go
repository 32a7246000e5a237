package dto

import (
	"time"

	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

type TutorSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Institution string `json:"institution,omitempty"`
}

type TuitionSummary struct {
	ID       uint   `json:"id"`
	Code     string `json:"code"`
	Class    string `json:"class"`
	Subject  string `json:"subject"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
	Status   string `json:"status"`
}

// ApplicationDTO is the full record shown to admins and the owning tutor.
type ApplicationDTO struct {
	models.Application
	StatusLabel string          `json:"statusLabel"`
	Tutor       *TutorSummary   `json:"tutor,omitempty"`
	Tuition     *TuitionSummary `json:"tuition,omitempty"`

	// NextStatuses drives the admin status picker; empty once final.
	NextStatuses []string `json:"nextStatuses"`
	Final        bool     `json:"final"`
}

// ApplicationPublicDTO omits every contact detail.
type ApplicationPublicDTO struct {
	ID            uint      `json:"id"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"statusLabel"`
	ApplicantName string    `json:"applicantName"`
	IsGuest       bool      `json:"isGuest"`
	AppliedAt     time.Time `json:"appliedAt"`
}

func NewApplicationDTO(ap *models.Application, label string) ApplicationDTO {
	out := ApplicationDTO{
		Application: *ap,
		StatusLabel: label,
	}

	if ap.Tutor != nil {
		out.Tutor = &TutorSummary{
			ID:          ap.Tutor.ID,
			Name:        ap.Tutor.Name,
			Email:       ap.Tutor.Email,
			Phone:       ap.Tutor.Phone,
			Institution: ap.Tutor.Institution,
		}
	}

	if ap.Tuition.ID != 0 {
		out.Tuition = &TuitionSummary{
			ID:       ap.Tuition.ID,
			Code:     ap.Tuition.Code,
			Class:    ap.Tuition.Class,
			Subject:  ap.Tuition.Subject,
			Location: ap.Tuition.Location,
			Salary:   ap.Tuition.Salary,
			Status:   ap.Tuition.Status,
		}
	}

	return out
}

func NewApplicationPublicDTO(ap *models.Application, label string) ApplicationPublicDTO {
	name := ap.GuestName
	if ap.Tutor != nil {
		name = ap.Tutor.Name
	}

	return ApplicationPublicDTO{
		ID:            ap.ID,
		Status:        ap.Status,
		StatusLabel:   label,
		ApplicantName: name,
		IsGuest:       ap.IsGuest(),
		AppliedAt:     ap.AppliedAt,
	}
}
