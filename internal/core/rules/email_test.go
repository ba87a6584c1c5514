package rules

import (
	"testing"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

func TestClassifyEmailQuoteRequestWithUrgency(t *testing.T) {
	intent, urgency := ClassifyEmail("Hi, can I get a quote for 100 widgets? This is urgent, need it asap.")
	if intent != domain.IntentQuoteRequest {
		t.Fatalf("expected Quote Request, got %q", intent)
	}
	if urgency != domain.UrgencyHigh {
		t.Fatalf("expected High urgency, got %q", urgency)
	}
}

func TestClassifyEmailFirstDeclaredIntentWins(t *testing.T) {
	// Contains both quote and order signals; the quote rule is declared first.
	intent, _ := ClassifyEmail("Please quote pricing before we place the order.")
	if intent != domain.IntentQuoteRequest {
		t.Fatalf("expected first-declared intent to win, got %q", intent)
	}
}

func TestClassifyEmailDefaults(t *testing.T) {
	intent, urgency := ClassifyEmail("Hello, just checking in about the weather.")
	if intent != domain.IntentGeneralInquiry {
		t.Fatalf("expected General Inquiry, got %q", intent)
	}
	if urgency != domain.UrgencyNormal {
		t.Fatalf("expected Normal urgency, got %q", urgency)
	}
}

func TestClassifyEmailHighWinsOverCritical(t *testing.T) {
	// High keywords are checked first; Critical applies only when none match.
	_, urgency := ClassifyEmail("We have an outage, urgent help needed asap.")
	if urgency != domain.UrgencyHigh {
		t.Fatalf("expected High urgency, got %q", urgency)
	}
}

func TestClassifyEmailCriticalWithoutHighSignals(t *testing.T) {
	_, urgency := ClassifyEmail("Complete outage reported by three customers this morning.")
	if urgency != domain.UrgencyCritical {
		t.Fatalf("expected Critical urgency, got %q", urgency)
	}
}

func TestClassifyEmailTable(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		intent  domain.EmailIntent
		urgency domain.EmailUrgency
	}{
		{"order", "Please process a new purchase order for item XYZ.", domain.IntentOrder, domain.UrgencyNormal},
		{"support", "Our system is down, critical support needed immediately!", domain.IntentSupport, domain.UrgencyHigh},
		{"feedback", "I have some feedback regarding your recent update.", domain.IntentFeedback, domain.UrgencyNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			intent, urgency := ClassifyEmail(tc.text)
			if intent != tc.intent {
				t.Fatalf("intent = %q, want %q", intent, tc.intent)
			}
			if urgency != tc.urgency {
				t.Fatalf("urgency = %q, want %q", urgency, tc.urgency)
			}
		})
	}
}
