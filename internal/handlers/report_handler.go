package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hrdash/pkwt-notifier/internal/middleware"
	"github.com/hrdash/pkwt-notifier/internal/services"
	"github.com/hrdash/pkwt-notifier/pkg/logger"
)

type ReportHandler struct {
	scannerService *services.ScannerService
	exportService  *services.ExportService
}

func NewReportHandler(scannerService *services.ScannerService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{scannerService: scannerService, exportService: exportService}
}

// @Summary Export expiring contracts
// @Description Download the caller's current unevaluated expiring contracts as an XLSX report
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/expiring_contracts_xlsx [get]
func (h *ReportHandler) ExpiringContractsXLSX(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	now := time.Now()

	entries, warnings, err := h.scannerService.Scan(c.Request.Context(), tenantID, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, w := range warnings {
		logger.Warn("Contract excluded from report: evaluation status undetermined",
			"tenant_id", tenantID, "contract_id", w.ContractID, "error", w.Err)
	}

	data, filename, err := h.exportService.ExpiringContractsXLSX(c.Request.Context(), entries, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
