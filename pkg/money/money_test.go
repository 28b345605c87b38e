package money

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		dollars int
		want    string
	}{
		{0, "0.00"},
		{10, "10.00"},
		{100, "100.00"},
		{1234, "1234.00"},
	}
	for _, tt := range tests {
		if got := Format(tt.dollars); got != tt.want {
			t.Fatalf("Format(%d) = %q, want %q", tt.dollars, got, tt.want)
		}
	}
}

func TestFormatCents(t *testing.T) {
	if got := FormatCents(12345); got != "123.45" {
		t.Fatalf("FormatCents(12345) = %q, want 123.45", got)
	}
	if got := FormatCents(5); got != "0.05" {
		t.Fatalf("FormatCents(5) = %q, want 0.05", got)
	}
}
