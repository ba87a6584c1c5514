package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/document-triage/internal/core/domain"
	"github.com/kirillkom/document-triage/internal/core/extract"
	"github.com/kirillkom/document-triage/internal/core/ports"
	"github.com/kirillkom/document-triage/internal/core/rules"
	"github.com/kirillkom/document-triage/internal/core/textnorm"
)

// ClassifyDocumentUseCase coordinates the hybrid classification policy:
// model first, deterministic rules as the guaranteed fallback, one normalized
// result either way. Model failures are recovered locally and never reach the
// caller; the only caller-visible failure is empty input.
type ClassifyDocumentUseCase struct {
	normalizer *textnorm.Normalizer
	scorer     *rules.Scorer
	model      ports.ModelClassifier
	store      ports.ResultStore
	logger     *slog.Logger
}

// NewClassifyDocumentUseCase wires the coordinator. model and store may be
// nil: a nil model skips the model attempt entirely, a nil store skips
// persistence.
func NewClassifyDocumentUseCase(
	normalizer *textnorm.Normalizer,
	scorer *rules.Scorer,
	model ports.ModelClassifier,
	store ports.ResultStore,
	logger *slog.Logger,
) *ClassifyDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassifyDocumentUseCase{
		normalizer: normalizer,
		scorer:     scorer,
		model:      model,
		store:      store,
		logger:     logger,
	}
}

// ClassifyDocument runs one classification request start to finish. The
// returned result always carries success=true unless the input was empty.
func (uc *ClassifyDocumentUseCase) ClassifyDocument(
	ctx context.Context,
	text, source string,
	kind domain.DocumentKind,
) (domain.ClassificationResult, error) {
	return uc.classify(ctx, text, source, kind, NewConversationID(kind))
}

// ClassifyQueued handles a request that was assigned its conversation id at
// enqueue time, so the caller can correlate the eventual record.
func (uc *ClassifyDocumentUseCase) ClassifyQueued(ctx context.Context, req domain.ClassifyRequest) (domain.ClassificationResult, error) {
	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = NewConversationID(req.Kind)
	}
	return uc.classify(ctx, req.Text, req.Source, req.Kind, conversationID)
}

func (uc *ClassifyDocumentUseCase) classify(
	ctx context.Context,
	text, source string,
	kind domain.DocumentKind,
	conversationID string,
) (domain.ClassificationResult, error) {
	now := time.Now().UTC()

	if strings.TrimSpace(text) == "" {
		result := domain.ClassificationResult{
			Success:      false,
			ErrorMessage: domain.ErrEmptyInput.Error(),
			Timestamp:    now,
		}
		return result, domain.ErrEmptyInput
	}

	result, modelUsed := uc.attemptModel(ctx, text)
	if !modelUsed {
		docType, confidence, scores := uc.scorer.Classify(text)
		result = domain.ClassificationResult{
			Success:      true,
			DocumentType: docType,
			Confidence:   confidence,
			Method:       domain.MethodRule,
			Reasoning:    rules.Reasoning(scores),
		}
	}

	result.ExtractedInfo = extract.Fields(text, result.DocumentType)
	result.Timestamp = now

	uc.persist(ctx, conversationID, source, kind, result)
	return result, nil
}

// attemptModel tries the model path. Every rejection reason collapses to
// "model unavailable, use rules"; the reason is logged, not surfaced.
func (uc *ClassifyDocumentUseCase) attemptModel(ctx context.Context, text string) (domain.ClassificationResult, bool) {
	if uc.model == nil || !uc.model.Available() {
		uc.logger.Debug("model path skipped", "reason", "not configured or unreachable")
		return domain.ClassificationResult{}, false
	}

	verdict, err := uc.model.Classify(ctx, uc.normalizer.Normalize(text))
	if err != nil {
		uc.logger.Warn("model classification rejected, falling back to rules", "error", err)
		return domain.ClassificationResult{}, false
	}

	return domain.ClassificationResult{
		Success:      true,
		DocumentType: verdict.DocumentType,
		Confidence:   clamp01(verdict.Confidence),
		Method:       domain.MethodModel,
		Reasoning:    verdict.Reasoning,
	}, true
}

func (uc *ClassifyDocumentUseCase) persist(ctx context.Context, conversationID, source string, kind domain.DocumentKind, result domain.ClassificationResult) {
	if uc.store == nil {
		return
	}

	record := domain.StoredRecord{
		ConversationID: conversationID,
		Source:         source,
		Kind:           kind,
		Result:         result,
		StoredAt:       time.Now().UTC(),
	}
	if err := uc.store.Append(ctx, record); err != nil {
		// A failed append never invalidates the result already produced.
		uc.logger.Error("store append failed", "conversation_id", record.ConversationID, "error", err)
	}
}

// NewConversationID groups records produced by one request.
func NewConversationID(kind domain.DocumentKind) string {
	prefix := "doc"
	switch kind {
	case domain.KindPDF:
		prefix = "pdf"
	case domain.KindText:
		prefix = "text"
	case domain.KindEmail:
		prefix = "email"
	case domain.KindJSON:
		prefix = "json"
	}
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
