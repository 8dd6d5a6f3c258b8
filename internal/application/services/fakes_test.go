package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"excel-analytics-api/internal/domain/auditlog"
	uploadDomain "excel-analytics-api/internal/domain/upload"
	userDomain "excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/infrastructure/mq"
)

type FakeUserRepo struct {
	FetchUserByIDFunc    func(ctx context.Context, uuid userDomain.UUID) (*userDomain.User, error)
	FetchUserByEmailFunc func(ctx context.Context, email string) (*userDomain.User, error)
	FetchUsersFunc       func(ctx context.Context) (userDomain.Users, error)
	CreateUserFunc       func(ctx context.Context, req userDomain.User) (*userDomain.User, error)
	FetchInternalIDFunc  func(ctx context.Context, uuid userDomain.UUID) (userDomain.ID, error)
	DeleteUserFunc       func(ctx context.Context, id userDomain.ID) (*userDomain.User, error)
	CountUsersFunc       func(ctx context.Context) (uint64, error)
	CountAdminsFunc      func(ctx context.Context) (uint64, error)
}

func (f *FakeUserRepo) FetchUserByID(ctx context.Context, id userDomain.UUID) (*userDomain.User, error) {
	if f.FetchUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserByIDFunc(ctx, id)
}
func (f *FakeUserRepo) FetchUserByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	if f.FetchUserByEmailFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserByEmailFunc(ctx, email)
}
func (f *FakeUserRepo) FetchUsers(ctx context.Context) (userDomain.Users, error) {
	if f.FetchUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUsersFunc(ctx)
}
func (f *FakeUserRepo) CreateUser(ctx context.Context, req userDomain.User) (*userDomain.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateUserFunc(ctx, req)
}
func (f *FakeUserRepo) FetchInternalID(ctx context.Context, id userDomain.UUID) (userDomain.ID, error) {
	if f.FetchInternalIDFunc == nil {
		return 0, errors.New("not used")
	}
	return f.FetchInternalIDFunc(ctx, id)
}
func (f *FakeUserRepo) DeleteUser(ctx context.Context, id userDomain.ID) (*userDomain.User, error) {
	if f.DeleteUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DeleteUserFunc(ctx, id)
}
func (f *FakeUserRepo) CountUsers(ctx context.Context) (uint64, error) {
	if f.CountUsersFunc == nil {
		return 0, errors.New("not used")
	}
	return f.CountUsersFunc(ctx)
}
func (f *FakeUserRepo) CountAdmins(ctx context.Context) (uint64, error) {
	if f.CountAdminsFunc == nil {
		return 0, errors.New("not used")
	}
	return f.CountAdminsFunc(ctx)
}

type FakeUploadRepo struct {
	FetchUploadByIDFunc     func(ctx context.Context, id uuid.UUID) (*uploadDomain.Upload, error)
	FetchUserUploadsFunc    func(ctx context.Context, userID userDomain.ID) (uploadDomain.Uploads, error)
	FetchAllUploadsFunc     func(ctx context.Context) (uploadDomain.WithOwners, error)
	CreateUploadFunc        func(ctx context.Context, userID userDomain.ID, req *uploadDomain.Upload) (*uploadDomain.Upload, error)
	DeleteUploadFunc        func(ctx context.Context, id uuid.UUID) error
	DeleteUserUploadsFunc   func(ctx context.Context, userID userDomain.ID) error
	CountUploadsFunc        func(ctx context.Context) (uint64, error)
	CountUploadsPerUserFunc func(ctx context.Context) ([]uploadDomain.OwnerCount, error)
}

func (f *FakeUploadRepo) FetchUploadByID(ctx context.Context, id uuid.UUID) (*uploadDomain.Upload, error) {
	if f.FetchUploadByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUploadByIDFunc(ctx, id)
}
func (f *FakeUploadRepo) FetchUserUploads(ctx context.Context, userID userDomain.ID) (uploadDomain.Uploads, error) {
	if f.FetchUserUploadsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserUploadsFunc(ctx, userID)
}
func (f *FakeUploadRepo) FetchAllUploads(ctx context.Context) (uploadDomain.WithOwners, error) {
	if f.FetchAllUploadsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchAllUploadsFunc(ctx)
}
func (f *FakeUploadRepo) CreateUpload(ctx context.Context, userID userDomain.ID, req *uploadDomain.Upload) (*uploadDomain.Upload, error) {
	if f.CreateUploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateUploadFunc(ctx, userID, req)
}
func (f *FakeUploadRepo) DeleteUpload(ctx context.Context, id uuid.UUID) error {
	if f.DeleteUploadFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteUploadFunc(ctx, id)
}
func (f *FakeUploadRepo) DeleteUserUploads(ctx context.Context, userID userDomain.ID) error {
	if f.DeleteUserUploadsFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteUserUploadsFunc(ctx, userID)
}
func (f *FakeUploadRepo) CountUploads(ctx context.Context) (uint64, error) {
	if f.CountUploadsFunc == nil {
		return 0, errors.New("not used")
	}
	return f.CountUploadsFunc(ctx)
}
func (f *FakeUploadRepo) CountUploadsPerUser(ctx context.Context) ([]uploadDomain.OwnerCount, error) {
	if f.CountUploadsPerUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CountUploadsPerUserFunc(ctx)
}

type FakeAuditRepo struct {
	AppendFunc       func(ctx context.Context, userID userDomain.ID, action string) error
	FetchEntriesFunc func(ctx context.Context) (auditlog.Entries, error)
}

func (f *FakeAuditRepo) Append(ctx context.Context, userID userDomain.ID, action string) error {
	if f.AppendFunc == nil {
		return errors.New("not used")
	}
	return f.AppendFunc(ctx, userID, action)
}
func (f *FakeAuditRepo) FetchEntries(ctx context.Context) (auditlog.Entries, error) {
	if f.FetchEntriesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchEntriesFunc(ctx)
}

type FakeStorage struct {
	UploadFunc   func(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	DownloadFunc func(ctx context.Context, key string) (io.ReadCloser, error)
	RemoveFunc   func(ctx context.Context, key string) error
}

func (f *FakeStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if f.UploadFunc == nil {
		return "", errors.New("not used")
	}
	return f.UploadFunc(ctx, key, r, size, contentType)
}
func (f *FakeStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if f.DownloadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DownloadFunc(ctx, key)
}
func (f *FakeStorage) Remove(ctx context.Context, key string) error {
	if f.RemoveFunc == nil {
		return errors.New("not used")
	}
	return f.RemoveFunc(ctx, key)
}
func (f *FakeStorage) PublicURL(key string) string { return "http://storage.local/test/" + key }
func (f *FakeStorage) Bucket() string              { return "test" }

type FakeAI struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
}

func (f *FakeAI) Complete(ctx context.Context, prompt string) (string, error) {
	if f.CompleteFunc == nil {
		return "", errors.New("not used")
	}
	return f.CompleteFunc(ctx, prompt)
}

// FakeMQ buffers published events so tests can assert on them without a
// running broker.
type FakeMQ struct {
	events chan mq.Event
}

func NewFakeMQ() *FakeMQ {
	return &FakeMQ{events: make(chan mq.Event, 16)}
}

func (f *FakeMQ) Connect(ctx context.Context, dsn string) error { return nil }
func (f *FakeMQ) Init() error                                   { return nil }
func (f *FakeMQ) PublisherWorker(ctx context.Context)           {}
func (f *FakeMQ) GetInputChan() chan mq.Event                   { return f.events }
func (f *FakeMQ) GetConn() *amqp091.Connection                  { return nil }

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_general_counters"},
		[]string{"result"},
	)
}

func workbookBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}
