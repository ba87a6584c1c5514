// Package extract pulls type-specific fields out of classified documents.
// Every field is optional: a miss leaves the field absent, it never aborts
// extraction of the others.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

// Field keys as they appear in ClassificationResult.ExtractedInfo.
const (
	FieldInvoiceNumber = "invoice_number"
	FieldAmount        = "amount"
	FieldDueDate       = "due_date"
	FieldPONumber      = "po_number"
	FieldVendor        = "vendor"
)

var (
	invoiceNumberRe = regexp.MustCompile(`(?:invoice|bill)\s*(?:#|no\.?|number)?\s*[:#]?\s*([a-z0-9][a-z0-9-]*)`)
	amountRe        = regexp.MustCompile(`(?:total(?:\s+amount)?|amount|subtotal|balance\s+due)\s*[:#]?\s*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)
	dueDateRe       = regexp.MustCompile(`(?:due\s+date|payment\s+due|due)\s*[:#]?\s*([0-9]{1,4}[/-][0-9]{1,2}[/-][0-9]{2,4})`)
	poNumberRe      = regexp.MustCompile(`(?:purchase\s+order|p\.?o\.?)\s*(?:#|no\.?|number)?\s*[:#]?\s*([a-z0-9][a-z0-9-]*)`)
	vendorRe        = regexp.MustCompile(`(?:vendor|supplier|sold\s+to|ship\s+to)\s*[:#]?\s*([^\n]+)`)
)

// Fields extracts the fields defined for docType from text. Unknown or
// extraction-free types yield an empty map.
func Fields(text string, docType domain.DocumentType) map[string]string {
	lowered := strings.ToLower(text)
	info := map[string]string{}

	switch docType {
	case domain.TypeInvoice:
		if m := invoiceNumberRe.FindStringSubmatch(lowered); m != nil {
			info[FieldInvoiceNumber] = m[1]
		}
		if m := amountRe.FindStringSubmatch(lowered); m != nil {
			if amount, ok := normalizeAmount(m[1]); ok {
				info[FieldAmount] = amount
			}
		}
		if m := dueDateRe.FindStringSubmatch(lowered); m != nil {
			info[FieldDueDate] = m[1]
		}
	case domain.TypePurchaseOrder:
		if m := poNumberRe.FindStringSubmatch(lowered); m != nil {
			info[FieldPONumber] = m[1]
		}
		if m := vendorRe.FindStringSubmatch(lowered); m != nil {
			info[FieldVendor] = strings.TrimSpace(m[1])
		}
	}

	return info
}

// normalizeAmount strips thousands separators and confirms the remainder still
// parses as a decimal number.
func normalizeAmount(raw string) (string, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	if _, err := strconv.ParseFloat(cleaned, 64); err != nil {
		return "", false
	}
	return cleaned, true
}
