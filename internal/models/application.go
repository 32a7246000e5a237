package models

import "time"

type Application struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Status string `gorm:"size:30;default:'pending';index" json:"status"`

	// nil for guest applications
	TutorID *uint `gorm:"uniqueIndex:idx_applications_tutor_tuition" json:"tutorId"`
	Tutor   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	TuitionID uint    `gorm:"not null;uniqueIndex:idx_applications_tutor_tuition;index" json:"tuitionId"`
	Tuition   Tuition `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	GuestName       string `gorm:"size:100" json:"guestName,omitempty"`
	GuestPhone      string `gorm:"size:20" json:"guestPhone,omitempty"`
	GuestEmail      string `gorm:"size:100" json:"guestEmail,omitempty"`
	GuestExperience string `gorm:"type:text" json:"guestExperience,omitempty"`
	GuestMessage    string `gorm:"type:text" json:"guestMessage,omitempty"`

	AgreedToTerms    bool   `json:"agreedToTerms"`
	ConfirmationText string `gorm:"type:text" json:"confirmationText"`

	DemoInstructions string     `gorm:"type:text" json:"demoInstructions"`
	DemoDate         *time.Time `json:"demoDate"`
	DemoCompleted    bool       `json:"demoCompleted"`
	DemoFeedback     string     `gorm:"type:text" json:"demoFeedback"`

	GuardianContactSent   bool       `json:"guardianContactSent"`
	GuardianContactSentAt *time.Time `json:"guardianContactSentAt"`

	Feedback         string  `gorm:"type:text" json:"feedback"`
	GuardianFeedback string  `gorm:"type:text" json:"guardianFeedback"`
	Notes            string  `gorm:"type:text" json:"notes"`
	MediaFee         float64 `json:"mediaFee"`

	AppliedAt   time.Time  `gorm:"not null" json:"appliedAt"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	RejectedAt  *time.Time `json:"rejectedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsGuest reports whether the application was submitted without a tutor account.
func (a *Application) IsGuest() bool {
	return a.TutorID == nil
}
