package tuition

import (
	"strings"

	"github.com/BruksfildServices01/tutor-marketplace/internal/httperr"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
	StatusClosed    Status = "closed"
)

func InitialStatus() Status {
	return StatusOpen
}

// AcceptsApplications reports whether tutors may still apply.
func AcceptsApplications(raw string) bool {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusOpen, StatusAvailable:
		return true
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusOpen, StatusAvailable, StatusBooked, StatusClosed:
		return s, nil
	}
	return "", httperr.ErrBusiness("invalid_tuition_status")
}
