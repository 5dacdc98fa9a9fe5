package sanitizer

import "testing"

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"KA01AB1234", "KA01AB1234"},
		{"ka-01-ab-1234", "KA01AB1234"},
		{"  ka 01 ab 1234  ", "KA01AB1234"},
		{"KA.01.AB.1234", "KA01AB1234"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		if got := NormalizePlate(tt.input); got != tt.expected {
			t.Errorf("NormalizePlate(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizePlate_EquivalentForms(t *testing.T) {
	forms := []string{"KA01AB1234", "ka-01 ab 1234", " KA.01.AB.1234 "}
	want := NormalizePlate(forms[0])
	for _, f := range forms[1:] {
		if NormalizePlate(f) != want {
			t.Errorf("NormalizePlate(%q) should equal NormalizePlate(%q)", f, forms[0])
		}
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Green  Charge   Hub ", "Green Charge Hub"},
		{"MG Road\tStation", "MG Road Station"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeLabel(tt.input); got != tt.expected {
			t.Errorf("SanitizeLabel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
