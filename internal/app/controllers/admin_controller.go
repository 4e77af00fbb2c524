package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/app/services"
	"github.com/campusgate/admission-portal/internal/middleware"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
	"github.com/campusgate/admission-portal/internal/pkg/helpers"
)

// AdminController handles the admin review and reporting endpoints
type AdminController struct {
	appService   *services.ApplicationService
	userService  *services.UserService
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(appService *services.ApplicationService, userService *services.UserService, adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		appService:   appService,
		userService:  userService,
		adminService: adminService,
		logger:       logger,
	}
}

// ListApplications returns a filtered page of applications
func (c *AdminController) ListApplications(ctx *gin.Context) {
	filter := dto.ApplicationFilter{
		Status: ctx.Query("status"),
		Course: ctx.Query("course"),
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.appService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateApplicationStatus records a review decision
func (c *AdminController) UpdateApplicationStatus(ctx *gin.Context) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	app, err := c.appService.SetStatus(ctx.Request.Context(), identity.UserID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	middleware.ObserveDecision(string(app.Status))
	c.logger.Info().Int64("applicationID", id).Str("status", string(app.Status)).
		Int64("reviewerID", identity.UserID).Msg("Application reviewed")
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Application status updated", app))
}

// VerifyDocument records a verification decision on a document
func (c *AdminController) VerifyDocument(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.VerifyDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	doc, err := c.appService.VerifyDocument(ctx.Request.Context(), id, *req.IsVerified, req.VerificationNotes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Document verification updated", doc))
}

// SearchApplications finds applications by applicant name
func (c *AdminController) SearchApplications(ctx *gin.Context) {
	apps, err := c.appService.Search(ctx.Request.Context(), ctx.Query("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"count": len(apps), "applications": apps}))
}

// GetDashboardStats returns the admin dashboard aggregates
func (c *AdminController) GetDashboardStats(ctx *gin.Context) {
	stats, err := c.adminService.GetDashboardStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// ListUsers returns a filtered page of user accounts
func (c *AdminController) ListUsers(ctx *gin.Context) {
	filter := dto.UserFilter{Role: ctx.Query("role")}
	if active := ctx.Query("isActive"); active != "" {
		isActive := active == "true"
		filter.IsActive = &isActive
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.userService.ListUsers(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateUserStatus activates or deactivates an account
func (c *AdminController) UpdateUserStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	profile, err := c.userService.SetUserStatus(ctx.Request.Context(), id, *req.IsActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", id).Bool("isActive", *req.IsActive).Msg("User status updated")
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("User status updated", profile))
}
