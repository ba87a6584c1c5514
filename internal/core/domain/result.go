package domain

import "time"

type Method string

const (
	MethodModel Method = "MODEL"
	MethodRule  Method = "RULE"
)

// RuleConfidenceCap bounds rule-based confidence below a perfectly confident
// model answer so the two provenances stay distinguishable. Tunable via config.
const RuleConfidenceCap = 0.9

// DefaultRuleConfidence is reported when no keyword or pattern matched and the
// scorer fell back to the catch-all category.
const DefaultRuleConfidence = 0.3

// ModelVerdict is the validated answer of the generative model, before the
// coordinator merges it into a ClassificationResult.
type ModelVerdict struct {
	DocumentType DocumentType `json:"document_type"`
	Confidence   float64      `json:"confidence"`
	Reasoning    string       `json:"reasoning"`
}

// ClassificationResult is the single normalized outcome of one classification
// request. It is immutable after construction; Method is set iff Success.
type ClassificationResult struct {
	Success       bool              `json:"success"`
	DocumentType  DocumentType      `json:"document_type,omitempty"`
	Confidence    float64           `json:"confidence"`
	Method        Method            `json:"method_used,omitempty"`
	Reasoning     string            `json:"reasoning,omitempty"`
	ExtractedInfo map[string]string `json:"extracted_info,omitempty"`
	ErrorMessage  string            `json:"error_message,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

// EmailClassification is the outcome of one email triage request.
type EmailClassification struct {
	Success      bool         `json:"success"`
	Intent       EmailIntent  `json:"intent,omitempty"`
	Urgency      EmailUrgency `json:"urgency,omitempty"`
	Method       Method       `json:"method_used,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
}

type DocumentKind string

const (
	KindPDF   DocumentKind = "PDF_DOCUMENT"
	KindText  DocumentKind = "TEXT_DOCUMENT"
	KindEmail DocumentKind = "EMAIL"
	KindJSON  DocumentKind = "JSON_DOCUMENT"
)

// StoredRecord is a classification outcome plus provenance. Document requests
// fill Result; email requests fill Email instead. Records are append-only:
// once written they are never mutated or deleted.
type StoredRecord struct {
	ConversationID string               `json:"conversation_id"`
	Source         string               `json:"source"`
	Kind           DocumentKind         `json:"kind"`
	Result         ClassificationResult `json:"result"`
	Email          *EmailClassification `json:"email_result,omitempty"`
	StoredAt       time.Time            `json:"stored_at"`
}

// ClassifyRequest is the queue payload for asynchronous classification.
type ClassifyRequest struct {
	ConversationID string       `json:"conversation_id"`
	Source         string       `json:"source"`
	Kind           DocumentKind `json:"kind"`
	Text           string       `json:"text"`
}

// RecordReport is the outcome of validating a structured record against the
// intake schema.
type RecordReport struct {
	Success          bool           `json:"success"`
	ProcessedData    map[string]any `json:"processed_data"`
	MissingFields    []string       `json:"missing_fields"`
	ValidationErrors []string       `json:"validation_errors"`
	ErrorMessage     string         `json:"error_message,omitempty"`
	Timestamp        time.Time      `json:"timestamp"`
}
