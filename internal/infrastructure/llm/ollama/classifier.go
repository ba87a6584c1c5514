package ollama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

// Classifier is the model side of the hybrid document policy. Each distinct
// failure mode carries its own domain kind so tests and logs can tell them
// apart, but the coordinator treats all of them as "use the rules".
type Classifier struct {
	client *Client
}

func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

func (c *Classifier) Available() bool {
	return c != nil && c.client.Available()
}

func (c *Classifier) Classify(ctx context.Context, text string) (domain.ModelVerdict, error) {
	raw, err := c.client.GenerateJSON(ctx, buildDocumentPrompt(text))
	if err != nil {
		return domain.ModelVerdict{}, err
	}
	return parseDocumentVerdict(raw)
}

// parseDocumentVerdict validates the model answer in three stages: JSON
// syntax, field shape, taxonomy membership. An out-of-taxonomy type is
// rejected, never coerced.
func parseDocumentVerdict(raw string) (domain.ModelVerdict, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &payload); err != nil {
		return domain.ModelVerdict{}, domain.WrapError(domain.ErrMalformedResponse, "parse response", err)
	}

	docTypeRaw, ok := payload["document_type"]
	if !ok {
		return domain.ModelVerdict{}, domain.WrapError(domain.ErrInvalidShape, "validate response", fmt.Errorf("missing document_type"))
	}
	var docType string
	if err := json.Unmarshal(docTypeRaw, &docType); err != nil {
		return domain.ModelVerdict{}, domain.WrapError(domain.ErrInvalidShape, "validate response", fmt.Errorf("document_type is not a string: %w", err))
	}

	confidenceRaw, ok := payload["confidence"]
	if !ok {
		return domain.ModelVerdict{}, domain.WrapError(domain.ErrInvalidShape, "validate response", fmt.Errorf("missing confidence"))
	}
	var confidence float64
	if err := json.Unmarshal(confidenceRaw, &confidence); err != nil {
		return domain.ModelVerdict{}, domain.WrapError(domain.ErrInvalidShape, "validate response", fmt.Errorf("confidence is not a number: %w", err))
	}

	var reasoning string
	if reasoningRaw, ok := payload["reasoning"]; ok {
		// Reasoning is optional; a non-string value is ignored rather than
		// rejected.
		_ = json.Unmarshal(reasoningRaw, &reasoning)
	}

	verdict := domain.ModelVerdict{
		DocumentType: domain.DocumentType(docType),
		Confidence:   confidence,
		Reasoning:    reasoning,
	}
	if !domain.IsKnownDocumentType(verdict.DocumentType) {
		return domain.ModelVerdict{}, domain.WrapError(domain.ErrUnknownCategory, "validate response", fmt.Errorf("document_type %q", docType))
	}
	return verdict, nil
}

// EmailClassifier asks the model for email intent and urgency. Unknown
// categories are coerced to the fallback values, matching the softer contract
// of the email domain.
type EmailClassifier struct {
	client *Client
}

func NewEmailClassifier(client *Client) *EmailClassifier {
	return &EmailClassifier{client: client}
}

func (c *EmailClassifier) Available() bool {
	return c != nil && c.client.Available()
}

func (c *EmailClassifier) ClassifyEmail(ctx context.Context, text string) (domain.EmailIntent, domain.EmailUrgency, error) {
	raw, err := c.client.GenerateJSON(ctx, buildEmailPrompt(text))
	if err != nil {
		return "", "", err
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &payload); err != nil {
		return "", "", domain.WrapError(domain.ErrMalformedResponse, "parse email response", err)
	}

	var intentStr, urgencyStr string
	intentRaw, haveIntent := payload["intent"]
	urgencyRaw, haveUrgency := payload["urgency"]
	if !haveIntent || !haveUrgency {
		return "", "", domain.WrapError(domain.ErrInvalidShape, "validate email response", fmt.Errorf("missing intent or urgency"))
	}
	if err := json.Unmarshal(intentRaw, &intentStr); err != nil {
		return "", "", domain.WrapError(domain.ErrInvalidShape, "validate email response", fmt.Errorf("intent is not a string: %w", err))
	}
	if err := json.Unmarshal(urgencyRaw, &urgencyStr); err != nil {
		return "", "", domain.WrapError(domain.ErrInvalidShape, "validate email response", fmt.Errorf("urgency is not a string: %w", err))
	}

	intent := domain.EmailIntent(intentStr)
	if !domain.IsKnownEmailIntent(intent) {
		intent = domain.IntentOther
	}
	urgency := domain.EmailUrgency(urgencyStr)
	if !domain.IsKnownEmailUrgency(urgency) {
		urgency = domain.UrgencyNormal
	}
	return intent, urgency, nil
}
