package dto

import (
	"time"

	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

// TuitionPublicDTO hides guardian contact data and the application list.
type TuitionPublicDTO struct {
	ID               uint      `json:"id"`
	Code             string    `json:"code"`
	Class            string    `json:"class"`
	Subject          string    `json:"subject"`
	Location         string    `json:"location"`
	Salary           string    `json:"salary"`
	DaysPerWeek      int       `json:"daysPerWeek"`
	Details          string    `json:"details"`
	Status           string    `json:"status"`
	ApplicationCount int       `json:"applicationCount"`
	CreatedAt        time.Time `json:"createdAt"`
}

func NewTuitionPublicDTO(t *models.Tuition) TuitionPublicDTO {
	return TuitionPublicDTO{
		ID:               t.ID,
		Code:             t.Code,
		Class:            t.Class,
		Subject:          t.Subject,
		Location:         t.Location,
		Salary:           t.Salary,
		DaysPerWeek:      t.DaysPerWeek,
		Details:          t.Details,
		Status:           t.Status,
		ApplicationCount: len(t.Applications),
		CreatedAt:        t.CreatedAt,
	}
}
