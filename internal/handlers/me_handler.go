package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-marketplace/internal/auth"
	"github.com/BruksfildServices01/tutor-marketplace/internal/httperr"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id := auth.FromContext(c)

	var user models.User
	err := h.db.WithContext(c.Request.Context()).First(&user, id.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	resp := userView(&user)
	resp["experience"] = user.Experience

	c.JSON(http.StatusOK, gin.H{"user": resp})
}
