package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beebee/models"
	"beebee/services/contact"
	"beebee/services/notification"
	"beebee/utils"
)

// LeadSubmitter is implemented by contact.LeadService.
type LeadSubmitter interface {
	Submit(ctx context.Context, req models.ContactRequest) (*models.ContactResult, error)
}

type ContactHandler struct {
	leads LeadSubmitter
}

func NewContactHandler(leads LeadSubmitter) *ContactHandler {
	return &ContactHandler{leads: leads}
}

// SubmitHandler accepts the contact form and e-mails the lead.
func (h *ContactHandler) SubmitHandler(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	res, err := h.leads.Submit(c.Request.Context(), req)
	switch {
	case errors.Is(err, contact.ErrMissingFields):
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields", "")
		return
	case errors.Is(err, notification.ErrMailNotConfigured):
		utils.JSONError(c, http.StatusInternalServerError, "Email is not configured", "")
		return
	case err != nil:
		getLogger(c).Error("Contact submission failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to send email", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}
