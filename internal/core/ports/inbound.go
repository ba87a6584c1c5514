package ports

import (
	"context"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

// DocumentTriage is the inbound contract for hybrid document classification.
type DocumentTriage interface {
	ClassifyDocument(ctx context.Context, text, source string, kind domain.DocumentKind) (domain.ClassificationResult, error)
}

// EmailTriage is the inbound contract for hybrid email classification.
type EmailTriage interface {
	ClassifyEmail(ctx context.Context, text, source string) (domain.EmailClassification, error)
}

// RecordValidator is the inbound contract for structured record intake.
type RecordValidator interface {
	ValidateRecord(ctx context.Context, data map[string]any, source string) (domain.RecordReport, error)
}
