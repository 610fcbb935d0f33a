package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hrdash/pkwt-notifier/internal/middleware"
	"github.com/hrdash/pkwt-notifier/internal/repository"
	"github.com/hrdash/pkwt-notifier/internal/services"
)

type LogHandler struct {
	auditService *services.AuditService
}

func NewLogHandler(auditService *services.AuditService) *LogHandler {
	return &LogHandler{auditService: auditService}
}

// @Summary List notification logs
// @Description Get a paginated list of the caller's notification log entries, newest first
// @Tags Logs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notification_logs [get]
func (h *LogHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))

	tenantID := middleware.GetTenantID(c)

	entries, total, err := h.auditService.List(c.Request.Context(), tenantID, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notification_logs": entries,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}
