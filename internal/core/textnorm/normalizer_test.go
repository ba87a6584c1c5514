package textnorm

import (
	"strings"
	"testing"
)

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := New(0).Normalize("  Invoice \n\n #42 \t total:   $10  ")
	if got != "Invoice #42 total: $10" {
		t.Fatalf("Normalize() = %q", got)
	}
}

func TestNormalizeClipsToBoundedPrefix(t *testing.T) {
	long := strings.Repeat("a", 5000)
	got := New(100).Normalize(long)
	if len(got) != 100 {
		t.Fatalf("expected 100 chars, got %d", len(got))
	}
}

func TestClipPreservesMultibyteRunes(t *testing.T) {
	got := Clip("héllo wörld", 5)
	if got != "héllo" {
		t.Fatalf("Clip() = %q", got)
	}
}

func TestClipNoOpWhenShort(t *testing.T) {
	if got := Clip("short", 100); got != "short" {
		t.Fatalf("Clip() = %q", got)
	}
}
