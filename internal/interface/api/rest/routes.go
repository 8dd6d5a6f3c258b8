package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth     = RouteApiV1 + "/auth"
	RouteRegister = RouteAuth + "/register"
	RouteLogin    = RouteAuth + "/login"
	RouteMe       = RouteAuth + "/me"

	// uploads
	RouteUpload         = RouteApiV1 + "/upload"
	RouteUploadHistory  = RouteUpload + "/history"
	RouteUploadByID     = RouteUpload + "/:upload_id"
	RouteUploadPreview  = RouteUpload + "/preview/:upload_id"
	RouteUploadDownload = RouteUpload + "/download/:upload_id"
	RouteUploadChart    = RouteUpload + "/chart/:upload_id"
	RouteUploadSummary  = RouteUploadByID + "/ai-summary"

	// admin
	RouteAdmin            = RouteApiV1 + "/admin"
	RouteAdminUsers       = RouteAdmin + "/users"
	RouteAdminUser        = RouteAdmin + "/user/:user_id"
	RouteAdminStats       = RouteAdmin + "/stats"
	RouteAdminLogs        = RouteAdmin + "/logs"
	RouteAdminUserUploads = RouteAdmin + "/user-uploads-count"
	RouteAdminFiles       = RouteAdmin + "/files"
	RouteAdminUploads     = RouteAdmin + "/uploads"
	RouteAdminFile        = RouteAdmin + "/file/:upload_id"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
