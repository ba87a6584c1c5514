package rules

import (
	"testing"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

func TestClassifyAlwaysReturnsKnownTypeAndBoundedConfidence(t *testing.T) {
	scorer := NewScorer()
	samples := []string{
		"Invoice #INV-42 total amount: $99.00",
		"Please send a quote for 100 widgets",
		"This agreement is made between the party of the first part",
		"Purchase Order No. PO-45678 from Vendor Solutions",
		"Receipt #881 payment received, thank you for your purchase",
		"zzzz qqqq xxxx",
		"   mixed content with no obvious signal   ",
	}

	for _, text := range samples {
		docType, confidence, _ := scorer.Classify(text)
		if !domain.IsKnownDocumentType(docType) {
			t.Fatalf("Classify(%q) returned unknown type %q", text, docType)
		}
		if confidence < 0 || confidence > domain.RuleConfidenceCap {
			t.Fatalf("Classify(%q) confidence = %v, want within [0, %v]", text, confidence, domain.RuleConfidenceCap)
		}
	}
}

func TestClassifyDefaultsToGeneralInquiryOnZeroScores(t *testing.T) {
	docType, confidence, scores := NewScorer().Classify("zzzz qqqq xxxx")
	if docType != domain.TypeGeneralInquiry {
		t.Fatalf("expected catch-all type, got %q", docType)
	}
	if confidence != domain.DefaultRuleConfidence {
		t.Fatalf("expected default confidence %v, got %v", domain.DefaultRuleConfidence, confidence)
	}
	for docType, score := range scores {
		if score != 0 {
			t.Fatalf("expected zero score for %s, got %d", docType, score)
		}
	}
}

func TestClassifyTieBreaksTowardFirstDeclaredEntry(t *testing.T) {
	// "bill" (invoice keyword) and "paid" (receipt keyword) each score 2 with
	// no pattern hits; the invoice entry is declared first.
	docType, confidence, scores := NewScorer().Classify("bill paid")
	if scores[domain.TypeInvoice] != scores[domain.TypeReceipt] {
		t.Fatalf("expected tied scores, got invoice=%d receipt=%d", scores[domain.TypeInvoice], scores[domain.TypeReceipt])
	}
	if docType != domain.TypeInvoice {
		t.Fatalf("expected tie to resolve to INVOICE, got %q", docType)
	}
	if confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %v", confidence)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	scorer := NewScorer()
	const text = "Invoice #INV-2023-001 Total Amount: $1250.75"
	firstType, firstConf, _ := scorer.Classify(text)
	secondType, secondConf, _ := scorer.Classify(text)
	if firstType != secondType || firstConf != secondConf {
		t.Fatalf("Classify not idempotent: (%q, %v) vs (%q, %v)", firstType, firstConf, secondType, secondConf)
	}
}

func TestClassifyPurchaseOrderScenario(t *testing.T) {
	docType, confidence, scores := NewScorer().Classify("Purchase Order No. PO-45678 from Vendor Solutions for 100 keyboards.")
	if docType != domain.TypePurchaseOrder {
		t.Fatalf("expected PURCHASE_ORDER, got %q (scores %v)", docType, scores)
	}
	if confidence <= 0 || confidence > domain.RuleConfidenceCap {
		t.Fatalf("confidence out of range: %v", confidence)
	}
}

func TestClassifyConfidenceIsCapped(t *testing.T) {
	// A single dominating category would otherwise reach win/total = 1.0.
	_, confidence, _ := NewScorer().Classify("invoice invoice invoice total amount due")
	if confidence != domain.RuleConfidenceCap {
		t.Fatalf("expected capped confidence %v, got %v", domain.RuleConfidenceCap, confidence)
	}
}

func TestScoreWeightsKeywordsAndPatterns(t *testing.T) {
	scores := NewScorer().Score("receipt")
	// One keyword occurrence, no pattern hit.
	if scores[domain.TypeReceipt] != keywordWeight {
		t.Fatalf("expected bare keyword score %d, got %d", keywordWeight, scores[domain.TypeReceipt])
	}

	scores = NewScorer().Score("receipt #12")
	// Keyword plus the "receipt #" pattern.
	if scores[domain.TypeReceipt] != keywordWeight+patternWeight {
		t.Fatalf("expected keyword+pattern score %d, got %d", keywordWeight+patternWeight, scores[domain.TypeReceipt])
	}
}
