package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tutor-marketplace/internal/auth"
	domain "github.com/BruksfildServices01/tutor-marketplace/internal/domain/application"
	"github.com/BruksfildServices01/tutor-marketplace/internal/dto"
	"github.com/BruksfildServices01/tutor-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
	ucApplication "github.com/BruksfildServices01/tutor-marketplace/internal/usecase/application"
)

// ======================================================
// HANDLER
// ======================================================

type ApplicationHandler struct {
	create *ucApplication.CreateApplication
	update *ucApplication.UpdateApplication
	get    *ucApplication.GetApplication
	list   *ucApplication.ListApplications
	remove *ucApplication.DeleteApplication

	loc *time.Location
}

func NewApplicationHandler(
	create *ucApplication.CreateApplication,
	update *ucApplication.UpdateApplication,
	get *ucApplication.GetApplication,
	list *ucApplication.ListApplications,
	remove *ucApplication.DeleteApplication,
	loc *time.Location,
) *ApplicationHandler {
	return &ApplicationHandler{
		create: create,
		update: update,
		get:    get,
		list:   list,
		remove: remove,
		loc:    loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateApplicationRequest struct {
	TuitionID uint `json:"tuitionId"`

	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	Experience string `json:"experience"`
	Message    string `json:"message"`

	AgreedToTerms    bool   `json:"agreedToTerms"`
	ConfirmationText string `json:"confirmationText"`
}

// UpdateApplicationRequest is shared by PATCH and PUT. Absent keys stay nil.
type UpdateApplicationRequest struct {
	Status *string `json:"status,omitempty"`

	ConfirmationText *string `json:"confirmationText,omitempty"`

	DemoInstructions *string `json:"demoInstructions,omitempty"`
	DemoDate         *string `json:"demoDate,omitempty"`
	DemoCompleted    *bool   `json:"demoCompleted,omitempty"`
	DemoFeedback     *string `json:"demoFeedback,omitempty"`

	GuardianContactSent *bool `json:"guardianContactSent,omitempty"`

	Feedback         *string  `json:"feedback,omitempty"`
	GuardianFeedback *string  `json:"guardianFeedback,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
	MediaFee         *float64 `json:"mediaFee,omitempty"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ApplicationHandler) Create(c *gin.Context) {
	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucApplication.CreateApplicationInput{
		Actor:            auth.FromContext(c),
		TuitionID:        req.TuitionID,
		Name:             req.Name,
		Phone:            req.Phone,
		Email:            req.Email,
		Experience:       req.Experience,
		Message:          req.Message,
		AgreedToTerms:    req.AgreedToTerms,
		ConfirmationText: req.ConfirmationText,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"success":     true,
		"application": toDTO(ap),
	})
}

// ======================================================
// READ
// ======================================================

func (h *ApplicationHandler) List(c *gin.Context) {
	in := ucApplication.ListApplicationsInput{
		Actor:       auth.FromContext(c),
		TuitionCode: c.Query("tuitionCode"),
		Status:      c.Query("status"),
	}

	if raw := c.Query("tuitionId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			badRequest(c, "invalid_id")
			return
		}
		tuitionID := uint(id)
		in.TuitionID = &tuitionID
	}

	in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	in.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	res, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	if res.Public {
		out := make([]dto.ApplicationPublicDTO, 0, len(res.Items))
		for i := range res.Items {
			ap := &res.Items[i]
			out = append(out, dto.NewApplicationPublicDTO(ap, domain.Status(ap.Status).Label()))
		}
		httpresp.Page(c, out, res.Total, res.Page, res.Limit)
		return
	}

	out := make([]dto.ApplicationDTO, 0, len(res.Items))
	for i := range res.Items {
		out = append(out, toDTO(&res.Items[i]))
	}
	httpresp.Page(c, out, res.Total, res.Page, res.Limit)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), auth.FromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"application": toDTO(ap)})
}

// ======================================================
// UPDATE (PATCH general / PUT admin)
// ======================================================

func (h *ApplicationHandler) Patch(c *gin.Context) {
	h.handleUpdate(c, false)
}

func (h *ApplicationHandler) Put(c *gin.Context) {
	h.handleUpdate(c, true)
}

func (h *ApplicationHandler) handleUpdate(c *gin.Context, adminOnly bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	// unknown statuses are rejected before the record is loaded
	if req.Status != nil {
		if _, err := domain.ParseStatus(*req.Status); err != nil {
			writeError(c, err)
			return
		}
	}

	in := ucApplication.UpdateApplicationInput{
		Actor:               auth.FromContext(c),
		AdminOnly:           adminOnly,
		ID:                  id,
		Status:              req.Status,
		ConfirmationText:    req.ConfirmationText,
		DemoInstructions:    req.DemoInstructions,
		DemoCompleted:       req.DemoCompleted,
		DemoFeedback:        req.DemoFeedback,
		GuardianContactSent: req.GuardianContactSent,
		Feedback:            req.Feedback,
		GuardianFeedback:    req.GuardianFeedback,
		Notes:               req.Notes,
		MediaFee:            req.MediaFee,
	}

	// an explicit empty demoDate clears the stored value
	if req.DemoDate != nil {
		if strings.TrimSpace(*req.DemoDate) == "" {
			in.ClearDemoDate = true
		} else {
			d, ok := parseDemoDate(*req.DemoDate, h.loc)
			if !ok {
				badRequest(c, "invalid_demo_date")
				return
			}
			in.DemoDate = &d
		}
	}

	res, err := h.update.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"application": toDTO(res.Application),
		"emailSent":   res.EmailSent,
	})
}

// ======================================================
// DELETE
// ======================================================

func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), auth.FromContext(c), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// HELPERS
// ======================================================

func toDTO(ap *models.Application) dto.ApplicationDTO {
	status := domain.Status(ap.Status)
	out := dto.NewApplicationDTO(ap, status.Label())

	next := domain.AllowedTargets(status)
	out.NextStatuses = make([]string, 0, len(next))
	for _, s := range next {
		out.NextStatuses = append(out.NextStatuses, string(s))
	}
	out.Final = status.IsFinal()
	return out
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid_id")
		return 0, false
	}
	return uint(id), true
}
