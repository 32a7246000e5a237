package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-marketplace/internal/audit"
	"github.com/BruksfildServices01/tutor-marketplace/internal/auth"
	"github.com/BruksfildServices01/tutor-marketplace/internal/domain/tuition"
	"github.com/BruksfildServices01/tutor-marketplace/internal/dto"
	"github.com/BruksfildServices01/tutor-marketplace/internal/httperr"
	"github.com/BruksfildServices01/tutor-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

type TuitionHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewTuitionHandler(db *gorm.DB, audit *audit.Dispatcher) *TuitionHandler {
	return &TuitionHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateTuitionRequest struct {
	GuardianName  string `json:"guardianName" binding:"required"`
	GuardianPhone string `json:"guardianPhone" binding:"required"`
	GuardianEmail string `json:"guardianEmail"`

	Class       string `json:"class" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Salary      string `json:"salary"`
	DaysPerWeek int    `json:"daysPerWeek" binding:"min=0,max=7"`
	Details     string `json:"details"`
}

type UpdateTuitionRequest struct {
	Status *string `json:"status,omitempty"`

	Class       *string `json:"class,omitempty"`
	Subject     *string `json:"subject,omitempty"`
	Location    *string `json:"location,omitempty"`
	Salary      *string `json:"salary,omitempty"`
	DaysPerWeek *int    `json:"daysPerWeek,omitempty"`
	Details     *string `json:"details,omitempty"`
}

// --------- Handlers ---------

func (h *TuitionHandler) Create(c *gin.Context) {
	var req CreateTuitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing_fields")
		return
	}

	tu := models.Tuition{
		Code:          newTuitionCode(),
		GuardianName:  strings.TrimSpace(req.GuardianName),
		GuardianPhone: strings.TrimSpace(req.GuardianPhone),
		GuardianEmail: strings.ToLower(strings.TrimSpace(req.GuardianEmail)),
		Class:         strings.TrimSpace(req.Class),
		Subject:       strings.TrimSpace(req.Subject),
		Location:      strings.TrimSpace(req.Location),
		Salary:        strings.TrimSpace(req.Salary),
		DaysPerWeek:   req.DaysPerWeek,
		Details:       req.Details,
		Status:        string(tuition.InitialStatus()),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&tu).Error; err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "tuition_created",
		Entity:   "tuition",
		EntityID: &tu.ID,
		Metadata: map[string]any{"code": tu.Code},
	})

	httpresp.Created(c, gin.H{
		"success": true,
		"tuition": dto.NewTuitionPublicDTO(&tu),
	})
}

// List shows open tuitions to the public. Admins see every tuition with
// guardian details and may filter by status.
func (h *TuitionHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Tuition{})

	isAdmin := auth.FromContext(c).IsAdmin()
	if raw := c.Query("status"); raw != "" {
		status, err := tuition.ParseStatus(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		q = q.Where("status = ?", string(status))
	}
	if !isAdmin {
		q = q.Where("status IN ?", []string{
			string(tuition.StatusOpen),
			string(tuition.StatusAvailable),
		})
	}

	var tuitions []models.Tuition
	if err := q.Order("created_at DESC").Order("id DESC").Find(&tuitions).Error; err != nil {
		writeError(c, err)
		return
	}

	if isAdmin {
		httpresp.List(c, tuitions)
		return
	}

	out := make([]dto.TuitionPublicDTO, 0, len(tuitions))
	for i := range tuitions {
		out = append(out, dto.NewTuitionPublicDTO(&tuitions[i]))
	}
	httpresp.List(c, out)
}

func (h *TuitionHandler) GetByCode(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

	var tu models.Tuition
	err := h.db.WithContext(c.Request.Context()).
		Where("code = ?", code).
		First(&tu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "tuition_not_found", "Tuition not found.")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	if auth.FromContext(c).IsAdmin() {
		httpresp.OK(c, gin.H{"tuition": tu})
		return
	}
	httpresp.OK(c, gin.H{"tuition": dto.NewTuitionPublicDTO(&tu)})
}

func (h *TuitionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTuitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	var tu models.Tuition
	err := h.db.WithContext(c.Request.Context()).First(&tu, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "tuition_not_found", "Tuition not found.")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	oldStatus := tu.Status
	if req.Status != nil {
		status, err := tuition.ParseStatus(*req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		tu.Status = string(status)
	}
	if req.Class != nil {
		tu.Class = strings.TrimSpace(*req.Class)
	}
	if req.Subject != nil {
		tu.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Location != nil {
		tu.Location = strings.TrimSpace(*req.Location)
	}
	if req.Salary != nil {
		tu.Salary = strings.TrimSpace(*req.Salary)
	}
	if req.DaysPerWeek != nil {
		tu.DaysPerWeek = *req.DaysPerWeek
	}
	if req.Details != nil {
		tu.Details = *req.Details
	}

	// applications is appended under a row lock by the application flow and
	// must not be written back from this unlocked read
	err = h.db.WithContext(c.Request.Context()).
		Model(&tu).
		Select("status", "class", "subject", "location", "salary", "days_per_week", "details", "updated_at").
		Updates(&tu).Error
	if err != nil {
		writeError(c, err)
		return
	}

	actorID := auth.FromContext(c).UserID
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "tuition_updated",
		Entity:   "tuition",
		EntityID: &tu.ID,
		Metadata: map[string]any{"from": oldStatus, "to": tu.Status},
	})

	c.JSON(http.StatusOK, gin.H{"tuition": tu})
}

func newTuitionCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TU-" + strings.ToUpper(raw[:8])
}
