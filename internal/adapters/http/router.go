// Package httpadapter exposes the triage pipeline over HTTP.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/document-triage/internal/core/domain"
	"github.com/kirillkom/document-triage/internal/core/ports"
	"github.com/kirillkom/document-triage/internal/core/usecase"
	"github.com/kirillkom/document-triage/internal/observability/metrics"
)

type Router struct {
	triage    ports.DocumentTriage
	email     ports.EmailTriage
	validator ports.RecordValidator
	store     ports.ResultStore
	queue     ports.ClassifyQueue
	metrics   *metrics.ClassificationMetrics

	// modelConfigured marks a rules answer as a fallback rather than the
	// only option, for the fallback counter.
	modelConfigured bool
}

type RouterOptions struct {
	Queue           ports.ClassifyQueue
	Metrics         *metrics.ClassificationMetrics
	ModelConfigured bool
}

func NewRouter(
	triage ports.DocumentTriage,
	email ports.EmailTriage,
	validator ports.RecordValidator,
	store ports.ResultStore,
	opts RouterOptions,
) *Router {
	return &Router{
		triage:          triage,
		email:           email,
		validator:       validator,
		store:           store,
		queue:           opts.Queue,
		metrics:         opts.Metrics,
		modelConfigured: opts.ModelConfigured,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/classify", rt.classifyDocument)
	mux.HandleFunc("/v1/classify/async", rt.classifyDocumentAsync)
	mux.HandleFunc("/v1/classify/email", rt.classifyEmail)
	mux.HandleFunc("/v1/records/validate", rt.validateRecord)
	mux.HandleFunc("/v1/results", rt.listResults)
	return requestIDMiddleware(accessLogMiddleware(mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type classifyRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Kind   string `json:"kind"`
}

func (req classifyRequest) documentKind() domain.DocumentKind {
	switch domain.DocumentKind(strings.ToUpper(strings.TrimSpace(req.Kind))) {
	case domain.KindPDF:
		return domain.KindPDF
	case domain.KindEmail:
		return domain.KindEmail
	case domain.KindJSON:
		return domain.KindJSON
	default:
		return domain.KindText
	}
}

func (rt *Router) classifyDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	if rt.metrics != nil {
		rt.metrics.StartClassification()
	}
	result, err := rt.triage.ClassifyDocument(r.Context(), req.Text, req.Source, req.documentKind())
	if rt.metrics != nil {
		rt.metrics.FinishClassification(result, time.Since(start))
		if result.Success && result.Method == domain.MethodRule && rt.modelConfigured {
			rt.metrics.ObserveModelFallback()
		}
	}
	if err != nil {
		// A failed classification still carries a well-formed result body.
		writeJSON(w, mapErrorToHTTPStatus(err), result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) classifyDocumentAsync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.queue == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "async classification is not configured"})
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	kind := req.documentKind()
	classifyReq := domain.ClassifyRequest{
		ConversationID: usecase.NewConversationID(kind),
		Source:         req.Source,
		Kind:           kind,
		Text:           req.Text,
	}
	if err := rt.queue.PublishClassifyRequest(r.Context(), classifyReq); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"conversation_id": classifyReq.ConversationID})
}

func (rt *Router) classifyEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text   string `json:"text"`
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	classification, err := rt.email.ClassifyEmail(r.Context(), req.Text, req.Source)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, classification)
}

func (rt *Router) validateRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Data   map[string]any `json:"data"`
		Source string         `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	report, err := rt.validator.ValidateRecord(r.Context(), req.Data, req.Source)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), report)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) listResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	conversationID := strings.TrimSpace(r.URL.Query().Get("conversation_id"))
	var (
		records []domain.StoredRecord
		err     error
	)
	if conversationID != "" {
		records, err = rt.store.QueryByConversation(r.Context(), conversationID)
	} else {
		records, err = rt.store.All(r.Context())
	}
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	if records == nil {
		records = []domain.StoredRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
