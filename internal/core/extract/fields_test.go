package extract

import (
	"testing"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

func TestFieldsInvoiceRoundTrip(t *testing.T) {
	text := "Invoice #INV-2023-001\nTotal Amount: $1250.75\nDue Date: 11/15/2024"
	info := Fields(text, domain.TypeInvoice)

	if got := info[FieldInvoiceNumber]; got != "inv-2023-001" {
		t.Fatalf("invoice_number = %q, want %q", got, "inv-2023-001")
	}
	if got := info[FieldAmount]; got != "1250.75" {
		t.Fatalf("amount = %q, want %q", got, "1250.75")
	}
	if got := info[FieldDueDate]; got != "11/15/2024" {
		t.Fatalf("due_date = %q, want %q", got, "11/15/2024")
	}
}

func TestFieldsInvoiceAmountStripsCommas(t *testing.T) {
	info := Fields("Invoice no 77\nBalance Due: $12,500.00", domain.TypeInvoice)
	if got := info[FieldAmount]; got != "12500.00" {
		t.Fatalf("amount = %q, want %q", got, "12500.00")
	}
}

func TestFieldsInvoicePartialMatchIsNotAnError(t *testing.T) {
	info := Fields("invoice 123 with no amount or due date", domain.TypeInvoice)
	if got := info[FieldInvoiceNumber]; got != "123" {
		t.Fatalf("invoice_number = %q, want %q", got, "123")
	}
	if _, ok := info[FieldAmount]; ok {
		t.Fatalf("expected amount to be absent, got %q", info[FieldAmount])
	}
	if _, ok := info[FieldDueDate]; ok {
		t.Fatalf("expected due_date to be absent, got %q", info[FieldDueDate])
	}
}

func TestFieldsPurchaseOrder(t *testing.T) {
	text := "Purchase Order No. PO-45678\nVendor: Vendor Solutions Inc\nShip by Friday"
	info := Fields(text, domain.TypePurchaseOrder)

	if got := info[FieldPONumber]; got != "po-45678" {
		t.Fatalf("po_number = %q, want %q", got, "po-45678")
	}
	if got := info[FieldVendor]; got != "vendor solutions inc" {
		t.Fatalf("vendor = %q, want %q", got, "vendor solutions inc")
	}
}

func TestFieldsDateShapes(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"payment due 1/2/2025", "1/2/2025"},
		{"due date: 01-02-2025", "01-02-2025"},
		{"due 2025-01-02", "2025-01-02"},
	}
	for _, tc := range cases {
		info := Fields(tc.text, domain.TypeInvoice)
		if got := info[FieldDueDate]; got != tc.want {
			t.Fatalf("Fields(%q) due_date = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestFieldsNoExtractionForOtherTypes(t *testing.T) {
	for _, docType := range []domain.DocumentType{domain.TypeContract, domain.TypeQuoteRequest, domain.TypeReceipt, domain.TypeGeneralInquiry} {
		info := Fields("invoice 99 total: $10.00 purchase order po-1", docType)
		if len(info) != 0 {
			t.Fatalf("expected no extraction for %s, got %v", docType, info)
		}
	}
}
