package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/charts"
	domain "excel-analytics-api/internal/domain/upload"
	"excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/infrastructure/mq"
	"excel-analytics-api/internal/spreadsheet"
)

const (
	maxBaseNameLen = 100
	storageFolder  = "excel_uploads"
)

// Only spreadsheet formats pass the gate, checked on the declared name.
var allowedExtensions = map[string]struct{}{
	".xls":  {},
	".xlsx": {},
}

var (
	windowsReserved = map[string]struct{}{
		"con": {}, "prn": {}, "aux": {}, "nul": {},
		"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
		"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
	}
	fileSafeRe    = regexp.MustCompile(`[^A-Za-z0-9\.\_\- ]+`)
	leadingDotsRe = regexp.MustCompile(`^\.+`)
)

type UploadService struct {
	logger           *zap.Logger
	storage          ports.ObjectStorage
	uploadRepository domain.Repository
	userRepository   user.Repository
	mq               ports.RabbitMQ
	mCounter         *prometheus.CounterVec
}

func NewUploadService(
	logger *zap.Logger,
	storage ports.ObjectStorage,
	uploadRepository domain.Repository,
	userRepository user.Repository,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.UploadService {
	return &UploadService{
		logger:           logger,
		storage:          storage,
		uploadRepository: uploadRepository,
		userRepository:   userRepository,
		mq:               mq,
		mCounter:         mCounter,
	}
}

// Ingest runs the pipeline: transient local copy, header extraction,
// remote blob upload, metadata insert. The transient copy removal is
// best-effort and never fails the pipeline.
func (us *UploadService) Ingest(ctx context.Context, owner *user.User, in *multipart.FileHeader) (*domain.Upload, error) {
	ext := strings.ToLower(filepath.Ext(in.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	id, err := us.userRepository.FetchInternalID(ctx, owner.UUID)
	if err != nil {
		return nil, err
	}

	tmpPath, err := saveTransient(in, ext)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
			us.logger.Warn("failed to remove transient upload copy",
				zap.String("path", tmpPath), zap.Error(rmErr))
		}
	}()

	columns, err := readHeaders(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if len(columns) == 0 {
		return nil, ErrEmptyDocument
	}

	fileName := filepath.Base(sanitizeFileName(in.Filename))
	key := genSafeStorageKey(fileName, owner.UUID)

	f, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	url, err := us.storage.Upload(ctx, key, f, in.Size, in.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	out, err := us.uploadRepository.CreateUpload(ctx, id, &domain.Upload{
		OwnerUUID:   owner.UUID,
		FileName:    fileName,
		DownloadURL: url,
		StorageKey:  key,
		Columns:     columns,
	})
	if err != nil {
		return nil, err
	}

	us.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  mq.ActionCreated,
		Entity:  "upload",
		ActorID: owner.UUID.String(),
		Subject: out.FileName,
	}
	us.mCounter.WithLabelValues("uploads_created_total").Inc()

	return out, nil
}

func (us *UploadService) FindHistory(ctx context.Context, owner *user.User) (domain.Uploads, error) {
	id, err := us.userRepository.FetchInternalID(ctx, owner.UUID)
	if err != nil {
		return nil, err
	}

	return us.uploadRepository.FetchUserUploads(ctx, id)
}

func (us *UploadService) FindUpload(ctx context.Context, id uuid.UUID, requester *user.User) (*domain.Upload, error) {
	return us.fetchAuthorized(ctx, id, requester)
}

func (us *UploadService) Preview(ctx context.Context, id uuid.UUID, requester *user.User) (*ports.Preview, error) {
	up, err := us.fetchAuthorized(ctx, id, requester)
	if err != nil {
		return nil, err
	}

	columns, rows, err := us.parseStored(ctx, up)
	if err != nil {
		return nil, err
	}

	return &ports.Preview{Columns: columns, Rows: rows}, nil
}

func (us *UploadService) ChartSeries(
	ctx context.Context,
	id uuid.UUID,
	requester *user.User,
	kind charts.Kind,
	sel charts.Selection,
) (*charts.Series, error) {
	up, err := us.fetchAuthorized(ctx, id, requester)
	if err != nil {
		return nil, err
	}

	_, rows, err := us.parseStored(ctx, up)
	if err != nil {
		return nil, err
	}

	return charts.Build(kind, rows, sel)
}

// Delete removes the remote blob first, then the metadata record. A
// failed remote deletion leaves the record untouched and surfaces the
// error; the steps are not transactional.
func (us *UploadService) Delete(ctx context.Context, id uuid.UUID, requester *user.User) error {
	up, err := us.fetchAuthorized(ctx, id, requester)
	if err != nil {
		return err
	}

	if err = us.removeBlob(ctx, up); err != nil {
		return err
	}

	if err = us.uploadRepository.DeleteUpload(ctx, up.UUID); err != nil {
		return err
	}

	us.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  mq.ActionDeleted,
		Entity:  "upload",
		ActorID: requester.UUID.String(),
		Subject: up.FileName,
	}
	us.mCounter.WithLabelValues("uploads_deleted_total").Inc()

	return nil
}

func (us *UploadService) fetchAuthorized(ctx context.Context, id uuid.UUID, requester *user.User) (*domain.Upload, error) {
	up, err := us.uploadRepository.FetchUploadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, ErrUploadNotFound
	}

	if up.OwnerUUID != requester.UUID && !requester.IsAdmin {
		return nil, ErrForbidden
	}

	return up, nil
}

func (us *UploadService) parseStored(ctx context.Context, up *domain.Upload) ([]string, []spreadsheet.Row, error) {
	rc, err := openPayload(ctx, us.storage, up)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	return spreadsheet.Parse(rc)
}

func (us *UploadService) removeBlob(ctx context.Context, up *domain.Upload) error {
	if up.StorageKey != "" {
		if err := us.storage.Remove(ctx, up.StorageKey); err != nil {
			return err
		}
	}

	// legacy records may still point at local disk
	if !strings.HasPrefix(up.DownloadURL, "http") {
		if err := os.Remove(up.DownloadURL); err != nil && !os.IsNotExist(err) {
			us.logger.Warn("failed to remove local fallback file",
				zap.String("path", up.DownloadURL), zap.Error(err))
		}
	}

	return nil
}

// openPayload re-downloads the stored blob; legacy records without a
// storage key resolve to local disk.
func openPayload(ctx context.Context, store ports.ObjectStorage, up *domain.Upload) (io.ReadCloser, error) {
	if up.StorageKey != "" {
		return store.Download(ctx, up.StorageKey)
	}

	return os.Open(up.DownloadURL)
}

func saveTransient(in *multipart.FileHeader, ext string) (string, error) {
	src, err := in.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "ingest-*"+ext)
	if err != nil {
		return "", err
	}

	if _, err = io.Copy(tmp, src); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}

func readHeaders(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return spreadsheet.Headers(f)
}

// genSafeStorageKey: "excel_uploads/YYYY/MM/DD/<ts-nanosec>/<useruuid>/<filename>.ext"
func genSafeStorageKey(fileName string, ownerUUID user.UUID) string {
	clean := strings.TrimSpace(fileName)
	clean = strings.Map(func(r rune) rune {
		if r == '\x00' || r < 0x20 {
			return -1
		}
		return r
	}, clean)
	clean = leadingDotsRe.ReplaceAllString(clean, "")

	ext := strings.ToLower(filepath.Ext(clean))
	base := strings.TrimSuffix(clean, ext)

	if ext == "" {
		if exts, _ := mime.ExtensionsByType("application/vnd.ms-excel"); len(exts) > 0 {
			ext = exts[0]
		}
	}

	base = fileSafeRe.ReplaceAllString(base, "-")
	base = strings.Trim(base, "- .")

	if len(base) > maxBaseNameLen {
		base = base[:maxBaseNameLen]
	}

	if base == "" {
		base = "file"
	}

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ext == "" {
		ext = ".xlsx"
	}

	safeFileName := base + ext

	now := time.Now().UTC()
	return fmt.Sprintf(
		"%s/%04d/%02d/%02d/%s/%s/%s",
		storageFolder,
		now.Year(), int(now.Month()), now.Day(),
		now.Format("20060102T150405.000000000Z"),
		strings.ToLower(strings.ReplaceAll(ownerUUID.String(), "-", "")),
		safeFileName,
	)
}

// sanitizeFileName make file name ASCII standard
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, ext)

	//  [a-z0-9], '-' и '_', dot/space → '-'
	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_':
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		case r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}
	if _, bad := windowsReserved[base]; bad {
		base = "_" + base
	}

	for utf8.RuneCountInString(base)+len(ext) > maxBaseNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
