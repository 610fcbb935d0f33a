package handlers

import (
	"github.com/hrdash/pkwt-notifier/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Notifier *NotifierHandler
	Log      *LogHandler
	Report   *ReportHandler
	Job      *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(),
		Notifier: NewNotifierHandler(svcs.Notifier),
		Log:      NewLogHandler(svcs.Audit),
		Report:   NewReportHandler(svcs.Scanner, svcs.Export),
		Job:      NewJobHandler(svcs.Job),
	}
}
