package ports

import (
	"context"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

// ModelClassifier classifies document text with the generative model. Any
// returned error is one of the domain model-rejection kinds; callers fall back
// to rule scoring instead of propagating it.
type ModelClassifier interface {
	Classify(ctx context.Context, text string) (domain.ModelVerdict, error)
	// Available reports whether the service is worth calling at all: false
	// when the integration is not configured or the breaker has it marked
	// unreachable.
	Available() bool
}

// EmailModelClassifier classifies email intent/urgency with the generative
// model. Unknown categories are coerced, not rejected; only transport and
// shape failures surface as errors.
type EmailModelClassifier interface {
	ClassifyEmail(ctx context.Context, text string) (domain.EmailIntent, domain.EmailUrgency, error)
	Available() bool
}

// ResultStore is the append-only record log. Appends never mutate or delete
// previously written records.
type ResultStore interface {
	Append(ctx context.Context, record domain.StoredRecord) error
	QueryByConversation(ctx context.Context, conversationID string) ([]domain.StoredRecord, error)
	All(ctx context.Context) ([]domain.StoredRecord, error)
}

// DocumentLoader reads classification inputs from disk.
type DocumentLoader interface {
	LoadText(path string) (string, error)
	LoadJSON(path string) (map[string]any, error)
	LoadPDFText(path string) (string, error)
}

// ClassifyQueue publishes/consumes asynchronous classification requests.
type ClassifyQueue interface {
	PublishClassifyRequest(ctx context.Context, req domain.ClassifyRequest) error
	SubscribeClassifyRequests(ctx context.Context, handler func(context.Context, domain.ClassifyRequest) error) error
}
