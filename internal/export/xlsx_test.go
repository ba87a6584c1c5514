package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

type storeFake struct {
	records []domain.StoredRecord
}

func (f *storeFake) Append(_ context.Context, record domain.StoredRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *storeFake) QueryByConversation(_ context.Context, _ string) ([]domain.StoredRecord, error) {
	return f.records, nil
}

func (f *storeFake) All(_ context.Context) ([]domain.StoredRecord, error) {
	return f.records, nil
}

func TestExportRecordsXLSX(t *testing.T) {
	store := &storeFake{records: []domain.StoredRecord{
		{
			ConversationID: "pdf_a",
			Source:         "inbox/invoice.pdf",
			Kind:           domain.KindPDF,
			Result: domain.ClassificationResult{
				Success:      true,
				DocumentType: domain.TypeInvoice,
				Confidence:   0.9,
				Method:       domain.MethodRule,
				ExtractedInfo: map[string]string{
					"invoice_number": "inv-2023-001",
					"amount":         "1250.75",
				},
			},
			StoredAt: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		},
	}}

	raw, err := NewService(store, nil).ExportRecordsXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportRecordsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Classifications")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one record", len(rows))
	}
	if rows[0][0] != "Stored At" {
		t.Fatalf("header = %q", rows[0][0])
	}
	record := rows[1]
	if record[1] != "pdf_a" {
		t.Fatalf("conversation = %q", record[1])
	}
	if record[4] != "INVOICE" {
		t.Fatalf("document type = %q", record[4])
	}
	if record[7] != "amount=1250.75; invoice_number=inv-2023-001" {
		t.Fatalf("extracted = %q", record[7])
	}
}

func TestExportRendersEmailRecords(t *testing.T) {
	store := &storeFake{records: []domain.StoredRecord{
		{
			ConversationID: "email_a",
			Source:         "inbox/mail.eml",
			Kind:           domain.KindEmail,
			Email: &domain.EmailClassification{
				Success: true,
				Intent:  domain.IntentQuoteRequest,
				Urgency: domain.UrgencyHigh,
				Method:  domain.MethodRule,
			},
			StoredAt: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		},
	}}

	raw, err := NewService(store, nil).ExportRecordsXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportRecordsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Classifications")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one record", len(rows))
	}
	record := rows[1]
	if record[3] != "EMAIL" {
		t.Fatalf("kind = %q", record[3])
	}
	if record[6] != "RULE" {
		t.Fatalf("method = %q", record[6])
	}
	if record[7] != "intent=Quote Request; urgency=High" {
		t.Fatalf("fields = %q", record[7])
	}
}

func TestExportEmptyLogHasOnlyHeader(t *testing.T) {
	raw, err := NewService(&storeFake{}, nil).ExportRecordsXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportRecordsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Classifications")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want header only", len(rows))
	}
}
