package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/application/services"
	"excel-analytics-api/internal/infrastructure/storage"
	"excel-analytics-api/internal/interface/api/rest/dto/admin"
	"excel-analytics-api/internal/interface/api/rest/dto/upload"
	"excel-analytics-api/internal/interface/api/rest/dto/user"
	"excel-analytics-api/internal/interface/api/rest/middleware"
	"excel-analytics-api/internal/interface/api/rest/validator"
)

type AdminController struct {
	adminService ports.AdminService
	logger       *zap.Logger
}

func NewAdminController(
	r *gin.Engine,
	logger *zap.Logger,
	adminService ports.AdminService,
	authMW gin.HandlerFunc,
) *AdminController {
	adc := &AdminController{
		adminService: adminService,
		logger:       logger,
	}

	adminOnly := middleware.AdminOnly()

	r.GET(RouteAdminUsers, authMW, adminOnly, adc.GetUsersHandler)
	r.DELETE(RouteAdminUser, authMW, adminOnly, adc.DeleteUserHandler)
	r.GET(RouteAdminStats, authMW, adminOnly, adc.GetStatsHandler)
	r.GET(RouteAdminLogs, authMW, adminOnly, adc.GetLogsHandler)
	r.GET(RouteAdminUserUploads, authMW, adminOnly, adc.GetUserUploadCountsHandler)
	r.GET(RouteAdminFiles, authMW, adminOnly, adc.GetFilesHandler)
	r.GET(RouteAdminUploads, authMW, adminOnly, adc.GetFilesHandler)
	r.DELETE(RouteAdminFile, authMW, adminOnly, adc.DeleteFileHandler)

	return adc
}

func (adc *AdminController) GetStatsHandler(c *gin.Context) {
	s, err := adc.adminService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get stats"},
		)
		adc.logger.Error("Stats() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, admin.ToResponseStats(*s))
}

func (adc *AdminController) GetUsersHandler(c *gin.Context) {
	users, err := adc.adminService.Users(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		adc.logger.Error("Users() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Data: user.ToResponseUsers(users),
	})
}

func (adc *AdminController) DeleteUserHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	err := adc.adminService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete user"},
		)
		adc.logger.Error("DeleteUser() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (adc *AdminController) GetUserUploadCountsHandler(c *gin.Context) {
	counts, err := adc.adminService.UserUploadCounts(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get upload counts"},
		)
		adc.logger.Error("UserUploadCounts() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": admin.ToResponseUserUploadCounts(counts)})
}

func (adc *AdminController) GetFilesHandler(c *gin.Context) {
	files, err := adc.adminService.Files(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get files"},
		)
		adc.logger.Error("Files() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, upload.OwnersResponseData{
		Data: upload.ToResponseWithOwners(files),
	})
}

func (adc *AdminController) DeleteFileHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("upload_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "upload_id must be a valid UUID"},
		)
		return
	}

	err := adc.adminService.DeleteFile(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		if errors.Is(err, services.ErrUploadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		if errors.Is(err, storage.ErrUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "storage unavailable"})
			adc.logger.Error("DeleteFile() storage error", zap.Error(err))
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete file"},
		)
		adc.logger.Error("DeleteFile() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (adc *AdminController) GetLogsHandler(c *gin.Context) {
	entries, err := adc.adminService.Logs(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get logs"},
		)
		adc.logger.Error("Logs() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": admin.ToResponseAuditEntries(entries)})
}
