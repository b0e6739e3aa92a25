package hexfmt

import (
	"strings"
	"testing"
)

func TestFormatWord(t *testing.T) {
	var b strings.Builder
	FormatWord(&b, 0xABCD)
	if got := b.String(); got != "ABCD" {
		t.Fatalf("got %q, want %q", got, "ABCD")
	}
}

func TestFormatWordPadsLeadingZeros(t *testing.T) {
	var b strings.Builder
	FormatWord(&b, 5)
	if got := b.String(); got != "0005" {
		t.Fatalf("got %q, want %q", got, "0005")
	}
}

func TestFormatWords(t *testing.T) {
	var b strings.Builder
	FormatWords(&b, []uint16{1, 2, 3})
	if got := b.String(); got != "0001 0002 0003" {
		t.Fatalf("got %q, want %q", got, "0001 0002 0003")
	}
}

func TestFormatWordsEmpty(t *testing.T) {
	var b strings.Builder
	FormatWords(&b, nil)
	if got := b.String(); got != "" {
		t.Fatalf("got %q, want empty string", got)
	}
}
