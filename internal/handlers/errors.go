package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tutor-marketplace/internal/httperr"
)

var errorMessages = map[string]string{
	"missing_fields":            "Required fields are missing.",
	"invalid_request":           "Request body is invalid.",
	"invalid_id":                "Invalid id.",
	"invalid_status":            "Unknown application status.",
	"invalid_status_transition": "This status change is not allowed.",
	"invalid_tuition_status":    "Unknown tuition status.",
	"invalid_demo_date":         "Demo date could not be parsed.",
	"terms_not_accepted":        "You must accept the terms to apply.",
	"already_applied":           "You have already applied to this tuition.",
	"tuition_unavailable":       "This tuition is not accepting applications.",
	"tuition_not_found":         "Tuition not found.",
	"application_not_found":     "Application not found.",
	"tutor_not_found":           "Tutor not found.",
	"user_not_found":            "User not found.",
	"unauthorized":              "Authentication required.",
	"forbidden":                 "You are not allowed to do this.",
}

var errorStatus = map[string]int{
	"tuition_not_found":     http.StatusNotFound,
	"application_not_found": http.StatusNotFound,
	"tutor_not_found":       http.StatusNotFound,
	"user_not_found":        http.StatusNotFound,
	"unauthorized":          http.StatusUnauthorized,
	"forbidden":             http.StatusForbidden,
}

// writeError answers with the business code carried by err. Anything else is
// logged and hidden behind internal_error.
func writeError(c *gin.Context, err error) {
	code, ok := httperr.AsBusiness(err)
	if !ok {
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.FullPath(), err)
		httperr.Internal(c, "internal_error", "Something went wrong. Please try again later.")
		return
	}

	status, ok := errorStatus[code]
	if !ok {
		status = http.StatusBadRequest
	}

	msg, ok := errorMessages[code]
	if !ok {
		msg = code
	}

	httperr.Write(c, status, code, msg)
}

func badRequest(c *gin.Context, code string) {
	writeError(c, httperr.ErrBusiness(code))
}
