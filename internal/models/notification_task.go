package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"

	ChannelEmail = "email"
)

// NotificationTask is an outbox row written in the same transaction as the
// status change it announces.
type NotificationTask struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	UUID string `gorm:"size:36;uniqueIndex;not null" json:"uuid"`

	ApplicationID uint   `gorm:"index" json:"applicationId"`
	Channel       string `gorm:"size:20;not null" json:"channel"`
	Recipient     string `gorm:"size:100;not null" json:"recipient"`
	RecipientName string `gorm:"size:100" json:"recipientName"`

	Payload datatypes.JSONType[StatusChangePayload] `json:"payload"`

	Status    string     `gorm:"size:20;default:'pending';index" json:"status"`
	Attempts  int        `json:"attempts"`
	LastError string     `gorm:"type:text" json:"lastError,omitempty"`
	SentAt    *time.Time `json:"sentAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TuitionSummary struct {
	Code     string `json:"code"`
	Class    string `json:"class"`
	Subject  string `json:"subject"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
}

type StatusChangePayload struct {
	TutorEmail string         `json:"tutorEmail"`
	TutorName  string         `json:"tutorName"`
	Tuition    TuitionSummary `json:"tuition"`
	OldStatus  string         `json:"oldStatus"`
	NewStatus  string         `json:"newStatus"`
	Message    string         `json:"message,omitempty"`
}
