package routes

import (
	"healthoffice_backend/internal/handlers"
	"healthoffice_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every resource handler under /api plus the
// static upload root. The gate middleware wraps mutation routes; when
// mutation protection is disabled it is a pass-through.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	gate gin.HandlerFunc,
	uploadDir string,
) {
	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.NewsHandler.RegisterRoutes(api, gate)
		appHandlers.ItaHandler.RegisterRoutes(api, gate)
		appHandlers.LinkHandler.RegisterRoutes(api, gate)
		appHandlers.StaffHandler.RegisterRoutes(api, gate)
		appHandlers.JobHandler.RegisterRoutes(api, gate)
		appHandlers.ActivityHandler.RegisterRoutes(api, gate)
		appHandlers.DownloadHandler.RegisterRoutes(api, gate)
		appHandlers.ProcurementHandler.RegisterRoutes(api, gate)
		appHandlers.DonorHandler.RegisterRoutes(api, gate)
		appHandlers.UploadHandler.RegisterRoutes(api, gate)
	}

	// Uploaded files are served read-only at their stored public paths.
	ginRouter.Static("/uploads", uploadDir)
	logger.Info("Static upload root registered", "dir", uploadDir)
}
