package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadTextTrimsWhitespace(t *testing.T) {
	path := writeFile(t, "doc.txt", []byte("  Invoice #INV-1\nTotal: $10\n\n"))

	text, err := New().LoadText(path)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	if text != "Invoice #INV-1\nTotal: $10" {
		t.Fatalf("text = %q", text)
	}
}

func TestLoadTextRejectsBinary(t *testing.T) {
	path := writeFile(t, "doc.bin", []byte{0xff, 0xfe, 0x00, 0x80})

	if _, err := New().LoadText(path); err == nil {
		t.Fatal("expected error for non-UTF-8 content")
	}
}

func TestLoadTextMissingFile(t *testing.T) {
	if _, err := New().LoadText(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "record.json", []byte(`{"id":"ORD-1","amount":99.5,"customer":{"name":"Acme","email":"a@acme.io"}}`))

	data, err := New().LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if data["id"] != "ORD-1" {
		t.Fatalf("id = %v", data["id"])
	}
	if data["amount"] != 99.5 {
		t.Fatalf("amount = %v", data["amount"])
	}
}

func TestLoadJSONRejectsInvalid(t *testing.T) {
	path := writeFile(t, "broken.json", []byte(`{"id":`))

	if _, err := New().LoadJSON(path); err == nil {
		t.Fatal("expected error for invalid json")
	}
}

func TestLoadPDFTextRejectsNonPDF(t *testing.T) {
	path := writeFile(t, "fake.pdf", []byte("just text, no pdf header"))

	if _, err := New().LoadPDFText(path); err == nil {
		t.Fatal("expected error for non-pdf file")
	}
}
