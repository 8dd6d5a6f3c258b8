package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/domain/auditlog"
	"excel-analytics-api/internal/domain/upload"
	domain "excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/infrastructure/mq"
)

type AdminService struct {
	logger           *zap.Logger
	userRepository   domain.Repository
	uploadRepository upload.Repository
	auditRepository  auditlog.Repository
	storage          ports.ObjectStorage
	mq               ports.RabbitMQ
	mCounter         *prometheus.CounterVec
}

func NewAdminService(
	logger *zap.Logger,
	userRepository domain.Repository,
	uploadRepository upload.Repository,
	auditRepository auditlog.Repository,
	storage ports.ObjectStorage,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.AdminService {
	return &AdminService{
		logger:           logger,
		userRepository:   userRepository,
		uploadRepository: uploadRepository,
		auditRepository:  auditRepository,
		storage:          storage,
		mq:               mq,
		mCounter:         mCounter,
	}
}

func (s *AdminService) Stats(ctx context.Context) (*ports.Stats, error) {
	users, err := s.userRepository.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.userRepository.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	files, err := s.uploadRepository.CountUploads(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.Stats{
		TotalUsers:  users,
		TotalAdmins: admins,
		TotalFiles:  files,
	}, nil
}

func (s *AdminService) Users(ctx context.Context) (domain.Users, error) {
	return s.userRepository.FetchUsers(ctx)
}

// UserUploadCounts joins the user list against a single grouping pass
// over all uploads. Users without uploads report zero.
func (s *AdminService) UserUploadCounts(ctx context.Context) ([]ports.UserUploadCount, error) {
	users, err := s.userRepository.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.uploadRepository.CountUploadsPerUser(ctx)
	if err != nil {
		return nil, err
	}

	byOwner := make(map[domain.UUID]uint64, len(counts))
	for _, c := range counts {
		byOwner[c.OwnerUUID] = c.Count
	}

	out := make([]ports.UserUploadCount, len(users))
	for idx, u := range users {
		out[idx] = ports.UserUploadCount{User: u, Count: byOwner[u.UUID]}
	}

	return out, nil
}

func (s *AdminService) Files(ctx context.Context) (upload.WithOwners, error) {
	return s.uploadRepository.FetchAllUploads(ctx)
}

// DeleteFile performs the same blob+metadata deletion as the owner flow
// and appends one audit entry naming the file and the acting admin.
func (s *AdminService) DeleteFile(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	up, err := s.uploadRepository.FetchUploadByID(ctx, id)
	if err != nil {
		return err
	}
	if up == nil {
		return ErrUploadNotFound
	}

	if up.StorageKey != "" {
		if err = s.storage.Remove(ctx, up.StorageKey); err != nil {
			return err
		}
	}
	if !strings.HasPrefix(up.DownloadURL, "http") {
		if err = os.Remove(up.DownloadURL); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove local fallback file",
				zap.String("path", up.DownloadURL), zap.Error(err))
		}
	}

	if err = s.uploadRepository.DeleteUpload(ctx, up.UUID); err != nil {
		return err
	}

	actorID, err := s.userRepository.FetchInternalID(ctx, actor.UUID)
	if err != nil {
		return err
	}
	if err = s.auditRepository.Append(ctx, actorID, fmt.Sprintf("Deleted file %q", up.FileName)); err != nil {
		return err
	}

	s.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  mq.ActionDeleted,
		Entity:  "upload",
		ActorID: actor.UUID.String(),
		Subject: up.FileName,
	}
	s.mCounter.WithLabelValues("admin_files_deleted_total").Inc()

	return nil
}

// DeleteUser removes the user's uploads first, then the user itself.
func (s *AdminService) DeleteUser(ctx context.Context, userUUID domain.UUID) error {
	id, err := s.userRepository.FetchInternalID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err = s.uploadRepository.DeleteUserUploads(ctx, id); err != nil {
		return err
	}
	u, err := s.userRepository.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if u != nil {
		s.mq.GetInputChan() <- mq.Event{
			Id:      uuid.New(),
			TS:      time.Now(),
			Action:  mq.ActionDeleted,
			Entity:  "user",
			ActorID: u.UUID.String(),
			Subject: u.Email,
		}
	}

	s.mCounter.WithLabelValues("users_deleted_total").Inc()

	return nil
}

func (s *AdminService) Logs(ctx context.Context) (auditlog.Entries, error) {
	return s.auditRepository.FetchEntries(ctx)
}
