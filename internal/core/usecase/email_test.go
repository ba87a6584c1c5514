package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

type emailModelFake struct {
	intent    domain.EmailIntent
	urgency   domain.EmailUrgency
	err       error
	available bool
	calls     int
}

func (f *emailModelFake) ClassifyEmail(context.Context, string) (domain.EmailIntent, domain.EmailUrgency, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.intent, f.urgency, nil
}

func (f *emailModelFake) Available() bool { return f.available }

func newEmailUC(model *emailModelFake, store *storeFake) *ClassifyEmailUseCase {
	// Typed nils must not leak into the interface fields.
	uc := NewClassifyEmailUseCase(nil, nil, nil)
	if model != nil {
		uc.model = model
	}
	if store != nil {
		uc.store = store
	}
	return uc
}

func TestClassifyEmailEmptyInputFails(t *testing.T) {
	store := &storeFake{}
	uc := newEmailUC(nil, store)

	result, err := uc.ClassifyEmail(context.Background(), "  ", "mail.txt")
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if result.Success {
		t.Fatalf("expected success=false")
	}
	if len(store.records) != 0 {
		t.Fatalf("expected nothing persisted, got %d records", len(store.records))
	}
}

func TestClassifyEmailModelAccepted(t *testing.T) {
	model := &emailModelFake{available: true, intent: domain.IntentSupport, urgency: domain.UrgencyCritical}
	uc := newEmailUC(model, nil)

	result, err := uc.ClassifyEmail(context.Background(), "system is broken", "mail.txt")
	if err != nil {
		t.Fatalf("ClassifyEmail() error = %v", err)
	}
	if result.Method != domain.MethodModel || result.Intent != domain.IntentSupport {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestClassifyEmailFallsBackToRules(t *testing.T) {
	model := &emailModelFake{available: true, err: domain.WrapError(domain.ErrMalformedResponse, "parse", errors.New("not json"))}
	uc := newEmailUC(model, nil)

	result, err := uc.ClassifyEmail(context.Background(), "Hi, can I get a quote for 100 widgets? This is urgent.", "mail.txt")
	if err != nil {
		t.Fatalf("ClassifyEmail() error = %v", err)
	}
	if result.Method != domain.MethodRule {
		t.Fatalf("expected RULE fallback, got %q", result.Method)
	}
	if result.Intent != domain.IntentQuoteRequest || result.Urgency != domain.UrgencyHigh {
		t.Fatalf("unexpected rule classification %+v", result)
	}
}

func TestClassifyEmailSkipsUnavailableModel(t *testing.T) {
	model := &emailModelFake{available: false}
	uc := newEmailUC(model, nil)

	result, err := uc.ClassifyEmail(context.Background(), "just a question", "mail.txt")
	if err != nil {
		t.Fatalf("ClassifyEmail() error = %v", err)
	}
	if model.calls != 0 {
		t.Fatalf("expected model to be skipped, got %d calls", model.calls)
	}
	if result.Intent != domain.IntentGeneralInquiry {
		t.Fatalf("expected General Inquiry, got %q", result.Intent)
	}
}

func TestClassifyEmailPersistsResult(t *testing.T) {
	store := &storeFake{}
	uc := newEmailUC(nil, store)

	result, err := uc.ClassifyEmail(context.Background(), "Please quote pricing for 50 units, urgent.", "inbox/mail.eml")
	if err != nil {
		t.Fatalf("ClassifyEmail() error = %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("expected one stored record, got %d", len(store.records))
	}

	record := store.records[0]
	if record.Kind != domain.KindEmail {
		t.Fatalf("kind = %s, want EMAIL", record.Kind)
	}
	if !strings.HasPrefix(record.ConversationID, "email_") {
		t.Fatalf("conversation id = %q", record.ConversationID)
	}
	if record.Email == nil {
		t.Fatal("expected email result on the stored record")
	}
	if record.Email.Intent != result.Intent || record.Email.Urgency != result.Urgency {
		t.Fatalf("stored email result %+v does not match returned %+v", record.Email, result)
	}
	if record.Source != "inbox/mail.eml" {
		t.Fatalf("source = %q", record.Source)
	}
}

func TestClassifyEmailStoreFailureDoesNotFailRequest(t *testing.T) {
	store := &storeFake{appendErr: errors.New("disk full")}
	uc := newEmailUC(nil, store)

	result, err := uc.ClassifyEmail(context.Background(), "quick question about pricing", "mail.txt")
	if err != nil {
		t.Fatalf("ClassifyEmail() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success despite store failure, got %+v", result)
	}
}
