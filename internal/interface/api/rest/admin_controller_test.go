package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/application/services"
	"excel-analytics-api/internal/domain/auditlog"
	uploadDomain "excel-analytics-api/internal/domain/upload"
	domain "excel-analytics-api/internal/domain/user"
)

type FakeAdminService struct {
	StatsFunc            func(ctx context.Context) (*ports.Stats, error)
	UsersFunc            func(ctx context.Context) (domain.Users, error)
	DeleteUserFunc       func(ctx context.Context, userUUID domain.UUID) error
	UserUploadCountsFunc func(ctx context.Context) ([]ports.UserUploadCount, error)
	FilesFunc            func(ctx context.Context) (uploadDomain.WithOwners, error)
	DeleteFileFunc       func(ctx context.Context, id uuid.UUID, actor *domain.User) error
	LogsFunc             func(ctx context.Context) (auditlog.Entries, error)
}

func (f *FakeAdminService) Stats(ctx context.Context) (*ports.Stats, error) {
	if f.StatsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.StatsFunc(ctx)
}
func (f *FakeAdminService) Users(ctx context.Context) (domain.Users, error) {
	if f.UsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UsersFunc(ctx)
}
func (f *FakeAdminService) DeleteUser(ctx context.Context, userUUID domain.UUID) error {
	if f.DeleteUserFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteUserFunc(ctx, userUUID)
}
func (f *FakeAdminService) UserUploadCounts(ctx context.Context) ([]ports.UserUploadCount, error) {
	if f.UserUploadCountsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UserUploadCountsFunc(ctx)
}
func (f *FakeAdminService) Files(ctx context.Context) (uploadDomain.WithOwners, error) {
	if f.FilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FilesFunc(ctx)
}
func (f *FakeAdminService) DeleteFile(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	if f.DeleteFileFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFileFunc(ctx, id, actor)
}
func (f *FakeAdminService) Logs(ctx context.Context) (auditlog.Entries, error) {
	if f.LogsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.LogsFunc(ctx)
}

func someAdmin() *domain.User {
	u := someDomainUser()
	u.IsAdmin = true
	return u
}

func setupAdminRouter(t *testing.T, as ports.AdminService, authed *domain.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewAdminController(r, zap.NewNop(), as, authMWFor(authed))
	return r
}

func TestAdminController_AdminGate(t *testing.T) {
	r := setupAdminRouter(t, &FakeAdminService{}, someDomainUser())

	rr := doReq(t, r, http.MethodGet, RouteAdminStats, nil, authHeader())
	require.Equal(t, http.StatusForbidden, rr.Code)

	var resp map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.Equal(t, "admin access only", resp["error"])
}

func TestAdminController_GetStatsHandler(t *testing.T) {
	as := &FakeAdminService{
		StatsFunc: func(ctx context.Context) (*ports.Stats, error) {
			return &ports.Stats{TotalUsers: 12, TotalAdmins: 2, TotalFiles: 40}, nil
		},
	}
	r := setupAdminRouter(t, as, someAdmin())

	rr := doReq(t, r, http.MethodGet, RouteAdminStats, nil, authHeader())
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, float64(12), resp["total_users"])
	assert.Equal(t, float64(2), resp["total_admins"])
	assert.Equal(t, float64(40), resp["total_files"])
}

func TestAdminController_GetUserUploadCountsHandler(t *testing.T) {
	alice := &domain.User{UUID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	as := &FakeAdminService{
		UserUploadCountsFunc: func(ctx context.Context) ([]ports.UserUploadCount, error) {
			return []ports.UserUploadCount{{User: alice, Count: 3}}, nil
		},
	}
	r := setupAdminRouter(t, as, someAdmin())

	rr := doReq(t, r, http.MethodGet, RouteAdminUserUploads, nil, authHeader())
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Alice", resp.Data[0]["name"])
	assert.Equal(t, float64(3), resp.Data[0]["upload_count"])
}

func TestAdminController_GetFilesHandler(t *testing.T) {
	owner := someDomainUser()
	as := &FakeAdminService{
		FilesFunc: func(ctx context.Context) (uploadDomain.WithOwners, error) {
			return uploadDomain.WithOwners{
				{Upload: *someUpload(owner), OwnerName: owner.Name, OwnerEmail: owner.Email},
			}, nil
		},
	}

	// /files and its /uploads alias serve the same listing
	for _, route := range []string{RouteAdminFiles, RouteAdminUploads} {
		r := setupAdminRouter(t, as, someAdmin())
		rr := doReq(t, r, http.MethodGet, route, nil, authHeader())
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Data []map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "report.xlsx", resp.Data[0]["file_name"])
		assert.Equal(t, owner.Email, resp.Data[0]["owner_email"])
	}
}

func TestAdminController_DeleteUserHandler(t *testing.T) {
	admin := someAdmin()

	tests := []struct {
		name       string
		userID     string
		mockAS     func() ports.AdminService
		wantStatus int
		wantErr    string
	}{
		{
			name:       "400 invalid uuid",
			userID:     "not-a-uuid",
			mockAS:     func() ports.AdminService { return &FakeAdminService{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "user_id must be a valid UUID",
		},
		{
			name:   "404 unknown user",
			userID: uuid.NewString(),
			mockAS: func() ports.AdminService {
				return &FakeAdminService{
					DeleteUserFunc: func(ctx context.Context, userUUID domain.UUID) error {
						return services.ErrUserNotFound
					},
				}
			},
			wantStatus: http.StatusNotFound,
			wantErr:    "user not found",
		},
		{
			name:   "204 success",
			userID: uuid.NewString(),
			mockAS: func() ports.AdminService {
				return &FakeAdminService{
					DeleteUserFunc: func(ctx context.Context, userUUID domain.UUID) error { return nil },
				}
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupAdminRouter(t, tt.mockAS(), admin)
			rr := doReq(t, r, http.MethodDelete, RouteAdmin+"/user/"+tt.userID, nil, authHeader())
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErr != "" {
				var resp map[string]any
				_ = json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.Equal(t, tt.wantErr, resp["error"])
			}
		})
	}
}

func TestAdminController_DeleteFileHandler(t *testing.T) {
	admin := someAdmin()

	t.Run("404 unknown file", func(t *testing.T) {
		as := &FakeAdminService{
			DeleteFileFunc: func(ctx context.Context, id uuid.UUID, actor *domain.User) error {
				return services.ErrUploadNotFound
			},
		}
		r := setupAdminRouter(t, as, admin)
		rr := doReq(t, r, http.MethodDelete, RouteAdmin+"/file/"+uuid.NewString(), nil, authHeader())
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("204 success passes the acting admin", func(t *testing.T) {
		as := &FakeAdminService{
			DeleteFileFunc: func(ctx context.Context, id uuid.UUID, actor *domain.User) error {
				assert.Equal(t, admin.UUID, actor.UUID)
				return nil
			},
		}
		r := setupAdminRouter(t, as, admin)
		rr := doReq(t, r, http.MethodDelete, RouteAdmin+"/file/"+uuid.NewString(), nil, authHeader())
		require.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestAdminController_GetLogsHandler(t *testing.T) {
	as := &FakeAdminService{
		LogsFunc: func(ctx context.Context) (auditlog.Entries, error) {
			return auditlog.Entries{
				{ID: 1, Action: `Deleted file "report.xlsx"`, UserUUID: uuid.New(), UserName: "Root", UserEmail: "root@example.com"},
			}, nil
		},
	}
	r := setupAdminRouter(t, as, someAdmin())

	rr := doReq(t, r, http.MethodGet, RouteAdminLogs, nil, authHeader())
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, `Deleted file "report.xlsx"`, resp.Data[0]["action"])
	assert.Equal(t, "Root", resp.Data[0]["user_name"])
}
