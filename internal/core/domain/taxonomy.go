package domain

import "regexp"

type DocumentType string

const (
	TypeInvoice        DocumentType = "INVOICE"
	TypeQuoteRequest   DocumentType = "QUOTE_REQUEST"
	TypeContract       DocumentType = "CONTRACT"
	TypePurchaseOrder  DocumentType = "PURCHASE_ORDER"
	TypeReceipt        DocumentType = "RECEIPT"
	TypeGeneralInquiry DocumentType = "GENERAL_INQUIRY"
)

// TypeDefault is the catch-all category the rule scorer falls back to
// when nothing in the text matches.
const TypeDefault = TypeGeneralInquiry

// TaxonomyEntry couples a document type with the keywords and patterns the
// rule scorer weighs. Entries are immutable after process start.
type TaxonomyEntry struct {
	Type     DocumentType
	Keywords []string
	Patterns []*regexp.Regexp
}

// DocumentTaxonomy is the single source of truth for document categories.
// Declaration order doubles as the tie-break order for rule scoring, and the
// model-response validator accepts exactly this set.
var DocumentTaxonomy = []TaxonomyEntry{
	{
		Type:     TypeInvoice,
		Keywords: []string{"invoice", "bill", "billing", "amount due", "balance due"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)invoice\s*(?:#|no\.?|number)?\s*[:#]?\s*[a-z0-9-]+`),
			regexp.MustCompile(`(?i)total\s+amount`),
			regexp.MustCompile(`(?i)payment\s+due`),
		},
	},
	{
		Type:     TypeQuoteRequest,
		Keywords: []string{"quote", "quotation", "estimate", "pricing", "rfq"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)request\s+for\s+(?:a\s+)?quot(?:e|ation)`),
			regexp.MustCompile(`(?i)rfq\s*(?:#|no\.?|number)?\s*[:#]?\s*[a-z0-9-]+`),
		},
	},
	{
		Type:     TypeContract,
		Keywords: []string{"contract", "agreement", "terms and conditions", "hereinafter", "whereas"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)party\s+of\s+the\s+(?:first|second)\s+part`),
			regexp.MustCompile(`(?i)effective\s+date`),
			regexp.MustCompile(`(?i)governing\s+law`),
		},
	},
	{
		Type:     TypePurchaseOrder,
		Keywords: []string{"purchase order", "po number", "vendor", "supplier", "ship to"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)p\.?o\.?\s*(?:#|no\.?|number)?\s*[:#]?\s*[a-z0-9-]+`),
			regexp.MustCompile(`(?i)purchase\s+order`),
			regexp.MustCompile(`(?i)delivery\s+date`),
		},
	},
	{
		Type:     TypeReceipt,
		Keywords: []string{"receipt", "paid", "payment received", "transaction", "change due"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)receipt\s*(?:#|no\.?|number)`),
			regexp.MustCompile(`(?i)payment\s+(?:received|confirmation)`),
			regexp.MustCompile(`(?i)thank\s+you\s+for\s+your\s+(?:purchase|payment)`),
		},
	},
	{
		Type:     TypeGeneralInquiry,
		Keywords: []string{"inquiry", "question", "information", "interested in", "could you"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:more|further)\s+information`),
			regexp.MustCompile(`(?i)get\s+in\s+touch`),
		},
	},
}

// IsKnownDocumentType reports taxonomy membership. The model validator uses it
// to reject categories the scorer could never produce.
func IsKnownDocumentType(t DocumentType) bool {
	for _, entry := range DocumentTaxonomy {
		if entry.Type == t {
			return true
		}
	}
	return false
}

type EmailIntent string

const (
	IntentQuoteRequest   EmailIntent = "Quote Request"
	IntentOrder          EmailIntent = "Order"
	IntentSupport        EmailIntent = "Support"
	IntentFeedback       EmailIntent = "Feedback"
	IntentGeneralInquiry EmailIntent = "General Inquiry"
	IntentOther          EmailIntent = "Other"
)

type EmailUrgency string

const (
	UrgencyLow      EmailUrgency = "Low"
	UrgencyNormal   EmailUrgency = "Normal"
	UrgencyHigh     EmailUrgency = "High"
	UrgencyCritical EmailUrgency = "Critical"
)

// EmailIntents and EmailUrgencies enumerate the email domain taxonomy shared
// by the rule classifier and the model prompt.
var (
	EmailIntents = []EmailIntent{
		IntentQuoteRequest, IntentOrder, IntentSupport, IntentFeedback, IntentGeneralInquiry, IntentOther,
	}
	EmailUrgencies = []EmailUrgency{UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyCritical}
)

func IsKnownEmailIntent(i EmailIntent) bool {
	for _, known := range EmailIntents {
		if known == i {
			return true
		}
	}
	return false
}

func IsKnownEmailUrgency(u EmailUrgency) bool {
	for _, known := range EmailUrgencies {
		if known == u {
			return true
		}
	}
	return false
}
