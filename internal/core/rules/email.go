package rules

import (
	"strings"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

// intentRules and urgencyRules are ordered: the first matching rule wins.
// More specific intents are declared before broader ones; for urgency, High
// keywords outrank the Critical list when both appear.
var intentRules = []struct {
	intent   domain.EmailIntent
	keywords []string
}{
	{domain.IntentQuoteRequest, []string{"quote", "quotation", "estimate", "pricing"}},
	{domain.IntentOrder, []string{"order", "purchase", "procure", "buy"}},
	{domain.IntentSupport, []string{"support", "help", "issue", "problem", "bug", "trouble"}},
	{domain.IntentFeedback, []string{"feedback", "suggestion", "review", "complaint"}},
}

var urgencyRules = []struct {
	urgency  domain.EmailUrgency
	keywords []string
}{
	{domain.UrgencyHigh, []string{"urgent", "asap", "immediately", "critical", "down", "halted"}},
	{domain.UrgencyCritical, []string{"blocker", "outage"}},
}

// ClassifyEmail derives intent and urgency from keyword presence. Like the
// document scorer it always succeeds; unmatched text lands on General
// Inquiry / Normal.
func ClassifyEmail(text string) (domain.EmailIntent, domain.EmailUrgency) {
	lowered := strings.ToLower(text)

	intent := domain.IntentGeneralInquiry
	for _, rule := range intentRules {
		if containsAny(lowered, rule.keywords) {
			intent = rule.intent
			break
		}
	}

	urgency := domain.UrgencyNormal
	for _, rule := range urgencyRules {
		if containsAny(lowered, rule.keywords) {
			urgency = rule.urgency
			break
		}
	}

	return intent, urgency
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
