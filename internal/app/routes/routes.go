package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campusgate/admission-portal/internal/app/controllers"
	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	applicationController *controllers.ApplicationController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	authLimiter *middleware.RateLimiter,
) {
	router.NoRoute(middleware.NoRouteHandler())

	v1 := router.Group("/api/v1")

	// --- Public auth routes, rate limited per IP ---
	auth := v1.Group("/auth")
	auth.Use(authLimiter.Handler())
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetProfile)
			users.PUT("/me", userController.UpdateProfile)
			users.PUT("/me/password", userController.ChangePassword)
			users.GET("/me/dashboard", userController.GetDashboard)
		}

		applications := authenticated.Group("/applications")
		{
			applications.POST("", applicationController.Submit)
			applications.GET("/me", applicationController.GetOwn)
			applications.GET("/:id", applicationController.Get)
			applications.PUT("/:id", applicationController.Update)
			applications.DELETE("/:id", applicationController.Delete)
			applications.POST("/:id/documents", applicationController.UploadDocument)
			applications.GET("/:id/documents", applicationController.ListDocuments)
		}

		documents := authenticated.Group("/documents")
		{
			documents.DELETE("/:id", applicationController.DeleteDocument)
		}

		// --- Admin-only routes ---
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/applications", adminController.ListApplications)
			admin.GET("/applications/search", adminController.SearchApplications)
			admin.PUT("/applications/:id/status", adminController.UpdateApplicationStatus)
			admin.PUT("/documents/:id/verify", adminController.VerifyDocument)
			admin.GET("/stats", adminController.GetDashboardStats)
			admin.GET("/users", adminController.ListUsers)
			admin.PUT("/users/:id/status", adminController.UpdateUserStatus)
		}
	}
}
