package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, batchJobHandler *BatchJobHandler, notificationHandler *NotificationHandler) {
	v1 := server.Group("/api/v1")

	if batchJobHandler != nil {
		v1.POST("/batch-jobs", batchJobHandler.Submit)
		v1.GET("/batch-jobs", batchJobHandler.List)
		v1.GET("/batch-jobs/:id", batchJobHandler.Get)
		v1.PUT("/batch-jobs/:id/status", batchJobHandler.UpdateStatus)
		v1.PUT("/batch-jobs/:id/credits", batchJobHandler.AssignCredits)
		v1.GET("/batch-jobs/:id/rows", batchJobHandler.Rows)
		v1.GET("/batch-jobs/:id/accounts", batchJobHandler.Accounts)
		v1.GET("/batch-jobs/:id/download", batchJobHandler.Download)
		v1.POST("/batch-jobs/:id/process", batchJobHandler.Process)
	}

	if notificationHandler != nil {
		v1.GET("/notifications", notificationHandler.List)
		v1.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
		v1.PUT("/notifications/:id/read", notificationHandler.MarkRead)
	}
}
