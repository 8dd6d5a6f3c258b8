package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/application/services"
	"excel-analytics-api/internal/charts"
	"excel-analytics-api/internal/infrastructure/ai"
	"excel-analytics-api/internal/infrastructure/storage"
	"excel-analytics-api/internal/interface/api/rest/dto/upload"
	"excel-analytics-api/internal/interface/api/rest/middleware"
	"excel-analytics-api/internal/interface/api/rest/validator"
)

// 10MB
const maxSize = int64(10 << 20)

type UploadController struct {
	uploadService  ports.UploadService
	summaryService ports.SummaryService
	logger         *zap.Logger
}

func NewUploadController(
	r *gin.Engine,
	logger *zap.Logger,
	uploadService ports.UploadService,
	summaryService ports.SummaryService,
	authMW gin.HandlerFunc,
) *UploadController {
	uc := &UploadController{
		uploadService:  uploadService,
		summaryService: summaryService,
		logger:         logger,
	}

	r.POST(RouteUpload, authMW, uc.CreateUploadHandler)
	r.GET(RouteUploadHistory, authMW, uc.HistoryHandler)
	r.GET(RouteUploadByID, authMW, uc.GetUploadHandler)
	r.GET(RouteUploadPreview, authMW, uc.PreviewHandler)
	r.GET(RouteUploadDownload, authMW, uc.DownloadHandler)
	r.GET(RouteUploadChart, authMW, uc.ChartHandler)
	r.DELETE(RouteUploadByID, authMW, uc.DeleteUploadHandler)
	r.POST(RouteUploadSummary, authMW, uc.SummaryHandler)

	return uc
}

func (uc *UploadController) CreateUploadHandler(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size <= 0 || fh.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large or empty"})
		return
	}

	up, err := uc.uploadService.Ingest(c.Request.Context(), middleware.CurrentUser(c), fh)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFormat) || errors.Is(err, services.ErrEmptyDocument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, storage.ErrUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "storage unavailable"})
			uc.logger.Error("Ingest() storage error", zap.Error(err))
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a file"},
		)
		uc.logger.Error("Ingest() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, upload.Created{
		Upload:  upload.ToResponseUpload(*up),
		Columns: up.Columns,
	})
}

func (uc *UploadController) HistoryHandler(c *gin.Context) {
	ups, err := uc.uploadService.FindHistory(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get files"},
		)
		uc.logger.Error("FindHistory() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, upload.ResponseData{
		Data: upload.ToResponseUploads(ups),
	})
}

func (uc *UploadController) GetUploadHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("upload_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "upload_id must be a valid UUID"},
		)
		return
	}

	up, err := uc.uploadService.FindUpload(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		uc.respondUploadError(c, err, "FindUpload()")
		return
	}

	c.JSON(http.StatusOK, upload.ToResponseUpload(*up))
}

func (uc *UploadController) PreviewHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("upload_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "upload_id must be a valid UUID"},
		)
		return
	}

	p, err := uc.uploadService.Preview(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		uc.respondUploadError(c, err, "Preview()")
		return
	}

	c.JSON(http.StatusOK, upload.Preview{
		Columns: p.Columns,
		Rows:    p.Rows,
	})
}

func (uc *UploadController) DownloadHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("upload_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "upload_id must be a valid UUID"},
		)
		return
	}

	up, err := uc.uploadService.FindUpload(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		uc.respondUploadError(c, err, "FindUpload()")
		return
	}

	if strings.HasPrefix(up.DownloadURL, "http") {
		c.Redirect(http.StatusFound, up.DownloadURL)
		return
	}

	c.FileAttachment(up.DownloadURL, up.FileName)
}

func (uc *UploadController) ChartHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("upload_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "upload_id must be a valid UUID"},
		)
		return
	}

	bins, _ := strconv.Atoi(c.Query("bins"))
	sel := charts.Selection{
		X:    c.Query("x"),
		Y:    c.Query("y"),
		Bins: bins,
	}

	series, err := uc.uploadService.ChartSeries(
		c.Request.Context(), id, middleware.CurrentUser(c), charts.Kind(c.Query("kind")), sel,
	)
	if err != nil {
		if errors.Is(err, charts.ErrUnknownKind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		uc.respondUploadError(c, err, "ChartSeries()")
		return
	}

	c.JSON(http.StatusOK, series)
}

func (uc *UploadController) DeleteUploadHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("upload_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "upload_id must be a valid UUID"},
		)
		return
	}

	err := uc.uploadService.Delete(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		uc.respondUploadError(c, err, "Delete()")
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UploadController) SummaryHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("upload_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "upload_id must be a valid UUID"},
		)
		return
	}

	summary, err := uc.summaryService.Summarize(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) || errors.Is(err, ai.ErrMalformedResponse) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "ai service unavailable"})
			uc.logger.Error("Summarize() upstream error", zap.Error(err))
			return
		}
		uc.respondUploadError(c, err, "Summarize()")
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// respondUploadError maps the shared upload error taxonomy; handler-specific
// errors are matched before calling it.
func (uc *UploadController) respondUploadError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrUploadNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, services.ErrUnsupportedFormat), errors.Is(err, services.ErrEmptyDocument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "storage unavailable"})
		uc.logger.Error(op+" storage error", zap.Error(err))
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		uc.logger.Error(op+" error", zap.Error(err))
	}
}
