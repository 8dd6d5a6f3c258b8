package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	domain "excel-analytics-api/internal/domain/upload"
	"excel-analytics-api/internal/spreadsheet"
)

const summaryInstruction = "You are an AI data analyst. Summarize this Excel data:\n%s\n\n" +
	"Return:\n" +
	"1. Natural language summary.\n" +
	"2. Alerts or unusual patterns.\n" +
	"3. Key statistics and recommendations."

type SummaryService struct {
	logger           *zap.Logger
	storage          ports.ObjectStorage
	uploadRepository domain.Repository
	ai               ports.AIClient
	mCounter         *prometheus.CounterVec
}

func NewSummaryService(
	logger *zap.Logger,
	storage ports.ObjectStorage,
	uploadRepository domain.Repository,
	ai ports.AIClient,
	mCounter *prometheus.CounterVec,
) ports.SummaryService {
	return &SummaryService{
		logger:           logger,
		storage:          storage,
		uploadRepository: uploadRepository,
		ai:               ai,
		mCounter:         mCounter,
	}
}

// Summarize re-downloads the stored blob, re-parses it and forwards one
// prompt to the completion service. Nothing is cached; every call pays
// the full cost again.
func (ss *SummaryService) Summarize(ctx context.Context, id uuid.UUID) (string, error) {
	up, err := ss.uploadRepository.FetchUploadByID(ctx, id)
	if err != nil {
		return "", err
	}
	if up == nil {
		return "", ErrUploadNotFound
	}

	rc, err := openPayload(ctx, ss.storage, up)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	_, rows, err := spreadsheet.Parse(rc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if len(rows) == 0 {
		return "", ErrEmptyDocument
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}

	text, err := ss.ai.Complete(ctx, fmt.Sprintf(summaryInstruction, data))
	if err != nil {
		return "", err
	}

	ss.mCounter.WithLabelValues("summaries_generated_total").Inc()

	return text, nil
}
