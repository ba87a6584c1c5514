package ollama

import (
	"fmt"
	"strings"

	"github.com/kirillkom/document-triage/internal/core/domain"
	"github.com/kirillkom/document-triage/internal/core/textnorm"
)

// maxPromptChars bounds the document snippet sent to the model; long inputs
// are clipped, not rejected.
const maxPromptChars = 2000

func buildDocumentPrompt(text string) string {
	categories := make([]string, 0, len(domain.DocumentTaxonomy))
	for _, entry := range domain.DocumentTaxonomy {
		categories = append(categories, string(entry.Type))
	}

	return fmt.Sprintf(`You are a business document classifier.
Classify the document below into exactly one of these categories: %s.
Return a strict JSON object with keys:
document_type (string, one of the categories above), confidence (number from 0 to 1), reasoning (string).
No markdown, no extra keys.

Document:
---
%s
---`, strings.Join(categories, ", "), textnorm.Clip(text, maxPromptChars))
}

func buildEmailPrompt(text string) string {
	intents := make([]string, 0, len(domain.EmailIntents))
	for _, intent := range domain.EmailIntents {
		intents = append(intents, fmt.Sprintf("'%s'", intent))
	}
	urgencies := make([]string, 0, len(domain.EmailUrgencies))
	for _, urgency := range domain.EmailUrgencies {
		urgencies = append(urgencies, fmt.Sprintf("'%s'", urgency))
	}

	return fmt.Sprintf(`Classify the intent and urgency of the following email.
Possible intents: %s.
Possible urgencies: %s.
Return a strict JSON object with keys 'intent' and 'urgency'.
Example: {"intent": "Quote Request", "urgency": "High"}

Email:
---
%s
---`, strings.Join(intents, ", "), strings.Join(urgencies, ", "), textnorm.Clip(text, maxPromptChars))
}
