package handlers

import (
	"github.com/labstack/echo/v4"
)

// Routes groups the handlers mounted under /api
type Routes struct {
	Trains     *TrainHandlers
	Aggregates *AggregateHandlers
	AuditLogs  *AuditLogsHandlers
	Tenants    *TenantHandlers
	Chat       *ChatHandlers
	Jobs       *JobHandlers
}

// Register mounts the authenticated API. superAdmin guards the cross-tenant routes.
func (r Routes) Register(api *echo.Group, superAdmin echo.MiddlewareFunc) {
	api.GET("/trains", r.Trains.ListTrains)
	api.POST("/trains/configure", r.Trains.ConfigureTrain)
	api.GET("/trains/:id", r.Trains.GetTrain)
	api.PUT("/trains/:id", r.Trains.UpdateTrain)
	api.DELETE("/trains/:id", r.Trains.DeleteTrain)
	api.GET("/trains/:id/wagons", r.Trains.ListWagons)
	api.PUT("/wagons/:id", r.Trains.UpdateWagon)

	api.GET("/aggregates", r.Aggregates.ListAggregates)
	api.POST("/aggregates", r.Aggregates.CreateAggregate)
	api.GET("/aggregates/spare", r.Aggregates.ListSpare)
	api.GET("/aggregates/maintenance-due", r.Aggregates.MaintenanceDue)
	api.POST("/aggregates/replace", r.Aggregates.Replace)
	api.GET("/aggregates/:id", r.Aggregates.GetAggregate)
	api.PUT("/aggregates/:id", r.Aggregates.UpdateAggregate)
	api.POST("/aggregates/:id/assign", r.Aggregates.Assign)
	api.POST("/aggregates/:id/unassign", r.Aggregates.Unassign)
	api.POST("/aggregates/:id/swap", r.Aggregates.Swap)
	api.GET("/aggregates/:id/readings", r.Aggregates.ListReadings)
	api.POST("/aggregates/:id/readings", r.Aggregates.RecordReading)
	api.GET("/aggregates/:id/history", r.Aggregates.History)

	api.GET("/audit-logs", r.AuditLogs.ListAuditLogs)
	api.GET("/audit-logs/summary", r.AuditLogs.GetAuditSummary)
	api.GET("/audit-logs/export", r.AuditLogs.ExportAuditLogs)
	api.GET("/audit-logs/:id", r.AuditLogs.GetAuditLog)

	api.GET("/tenants", r.Tenants.ListTenants, superAdmin)
	api.GET("/tenants/:id/configuration", r.Tenants.GetConfiguration)
	api.PUT("/tenants/:id/configuration", r.Tenants.UpdateConfiguration)
	api.POST("/tenants/:id/logo", r.Tenants.UploadLogo)

	admin := api.Group("/admin", superAdmin)
	admin.GET("/tenant-mappings", r.Tenants.ListMappings)
	admin.PUT("/tenant-mappings", r.Tenants.PutMapping)
	if r.Jobs != nil {
		admin.GET("/jobs", r.Jobs.ListJobs)
		admin.PUT("/jobs/:name", r.Jobs.RescheduleJob)
		admin.DELETE("/jobs/:name", r.Jobs.PauseJob)
	}

	api.POST("/chat", r.Chat.Chat)
}
