package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hrdash/pkwt-notifier/internal/middleware"
	"github.com/hrdash/pkwt-notifier/internal/services"
	"github.com/hrdash/pkwt-notifier/pkg/logger"
)

type NotifierHandler struct {
	notifierService *services.NotifierService
}

func NewNotifierHandler(notifierService *services.NotifierService) *NotifierHandler {
	return &NotifierHandler{notifierService: notifierService}
}

// RunRequest is the on-demand trigger body. The target tenant defaults to
// the authenticated caller.
type RunRequest struct {
	UserID *uint  `json:"userId"`
	CC     string `json:"cc"`
}

// RunResponse mirrors the response contract consumed by the dashboard
type RunResponse struct {
	Success                   bool                        `json:"success"`
	Message                   string                      `json:"message"`
	UserID                    uint                        `json:"userId"`
	EmailsSent                int                         `json:"emailsSent"`
	TotalUnevaluatedEmployees int                         `json:"totalUnevaluatedEmployees"`
	Employees                 []services.NotifiedEmployee `json:"employees"`
}

// @Summary Trigger notification run
// @Description Runs the contract expiration scan for one tenant and sends the digest email on demand
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body RunRequest false "Optional target tenant and CC address"
// @Success 200 {object} RunResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications/run [post]
func (h *NotifierHandler) Run(c *gin.Context) {
	callerID := middleware.GetTenantID(c)

	var req RunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}
	}

	targetID := callerID
	if req.UserID != nil {
		targetID = *req.UserID
		if targetID != callerID {
			logger.Warn("On-demand run requested for different tenant", "caller", callerID, "target", targetID)
		}
	}

	result, err := h.notifierService.RunForTenant(c.Request.Context(), targetID, time.Now(), req.CC)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSenderNotConfigured):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Sender email or credential not configured. Please configure the global sender settings.",
			})
		case errors.Is(err, services.ErrRecipientNotConfigured):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": fmt.Sprintf("Tenant %d has no recipient email configured. Please set up notification settings.", targetID),
			})
		case errors.Is(err, services.ErrTenantNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": fmt.Sprintf("Tenant %d not found", targetID),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	resp := RunResponse{
		Success:                   true,
		UserID:                    targetID,
		EmailsSent:                result.EmailsSent,
		TotalUnevaluatedEmployees: result.TotalUnevaluated,
		Employees:                 result.Employees,
	}
	if resp.Employees == nil {
		resp.Employees = []services.NotifiedEmployee{}
	}
	if result.TotalUnevaluated == 0 {
		resp.Message = fmt.Sprintf("No unevaluated employees with PKWT expiring within 30 days for tenant %d", targetID)
	} else {
		resp.Message = fmt.Sprintf("Sent %d email(s) covering %d unevaluated employee(s)", result.EmailsSent, result.TotalUnevaluated)
	}

	c.JSON(http.StatusOK, resp)
}
