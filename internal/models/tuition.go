package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tuition is a guardian-posted teaching request.
type Tuition struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:20;uniqueIndex;not null" json:"code"`

	GuardianName  string `gorm:"size:100" json:"guardianName"`
	GuardianPhone string `gorm:"size:20" json:"guardianPhone"`
	GuardianEmail string `gorm:"size:100" json:"guardianEmail"`

	Class       string `gorm:"size:50;not null" json:"class"`
	Subject     string `gorm:"size:150;not null" json:"subject"`
	Location    string `gorm:"size:150;not null" json:"location"`
	Salary      string `gorm:"size:50" json:"salary"`
	DaysPerWeek int    `json:"daysPerWeek"`
	Details     string `gorm:"type:text" json:"details"`

	Status string `gorm:"size:20;default:'open';index" json:"status"`

	Applications datatypes.JSONSlice[ApplicationRef] `json:"applications"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ApplicationRef is the summary entry a tuition keeps for each application.
type ApplicationRef struct {
	ApplicationID uint      `json:"applicationId"`
	TutorID       *uint     `json:"tutorId,omitempty"`
	GuestName     string    `json:"guestName,omitempty"`
	AppliedAt     time.Time `json:"appliedAt"`
}
