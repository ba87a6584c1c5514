package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/kirillkom/document-triage/internal/core/domain"
	"github.com/kirillkom/document-triage/internal/core/ports"
	"github.com/kirillkom/document-triage/internal/core/rules"
)

// ClassifyEmailUseCase applies the same model-then-rules policy to email
// intent and urgency. Unlike the document path, the email model adapter
// coerces unknown categories instead of rejecting them. Successful
// classifications land in the same record log as document results.
type ClassifyEmailUseCase struct {
	model  ports.EmailModelClassifier
	store  ports.ResultStore
	logger *slog.Logger
}

// NewClassifyEmailUseCase wires the email coordinator. model and store may be
// nil: a nil model skips the model attempt, a nil store skips persistence.
func NewClassifyEmailUseCase(model ports.EmailModelClassifier, store ports.ResultStore, logger *slog.Logger) *ClassifyEmailUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassifyEmailUseCase{model: model, store: store, logger: logger}
}

func (uc *ClassifyEmailUseCase) ClassifyEmail(ctx context.Context, text, source string) (domain.EmailClassification, error) {
	now := time.Now().UTC()

	if strings.TrimSpace(text) == "" {
		return domain.EmailClassification{
			Success:      false,
			ErrorMessage: domain.ErrEmptyInput.Error(),
			Timestamp:    now,
		}, domain.ErrEmptyInput
	}

	var classification domain.EmailClassification
	if uc.model != nil && uc.model.Available() {
		intent, urgency, err := uc.model.ClassifyEmail(ctx, text)
		if err == nil {
			classification = domain.EmailClassification{
				Success:   true,
				Intent:    intent,
				Urgency:   urgency,
				Method:    domain.MethodModel,
				Timestamp: now,
			}
			uc.persist(ctx, source, classification)
			return classification, nil
		}
		uc.logger.Warn("model email classification rejected, falling back to rules", "source", source, "error", err)
	}

	intent, urgency := rules.ClassifyEmail(text)
	classification = domain.EmailClassification{
		Success:   true,
		Intent:    intent,
		Urgency:   urgency,
		Method:    domain.MethodRule,
		Timestamp: now,
	}
	uc.persist(ctx, source, classification)
	return classification, nil
}

func (uc *ClassifyEmailUseCase) persist(ctx context.Context, source string, classification domain.EmailClassification) {
	if uc.store == nil {
		return
	}

	record := domain.StoredRecord{
		ConversationID: NewConversationID(domain.KindEmail),
		Source:         source,
		Kind:           domain.KindEmail,
		Email:          &classification,
		StoredAt:       time.Now().UTC(),
	}
	if err := uc.store.Append(ctx, record); err != nil {
		// A failed append never invalidates the classification.
		uc.logger.Error("store append failed", "conversation_id", record.ConversationID, "error", err)
	}
}
