package translation

import "testing"

func TestLanguageName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"English", "English"},
		{"Chinese", "Chinese"},
		{"zh", "Chinese"},
		{"de", "German"},
		{" ja ", "Japanese"},
		{"Simplified Chinese", "Simplified Chinese"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := LanguageName(tt.label); got != tt.want {
				t.Errorf("LanguageName(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestDeepLCode(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"English", "EN"},
		{"chinese", "ZH"},
		{"Japanese", "JA"},
		{"zh", "ZH"},
		{"pt-BR", "PT"},
		{"fr", "FR"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := DeepLCode(tt.label); got != tt.want {
				t.Errorf("DeepLCode(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}
