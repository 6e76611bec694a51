package gui

import (
	"reflect"
	"testing"

	"codeberg.org/snonux/sheettrans/internal/table"
)

func TestOrderedSelection(t *testing.T) {
	columns := []string{"Id", "Title", "Body", "Notes"}

	tests := []struct {
		name    string
		checked []string
		want    []string
	}{
		{"none", nil, nil},
		{"sheet order wins", []string{"Notes", "Title"}, []string{"Title", "Notes"}},
		{"stale entries dropped", []string{"Gone", "Body"}, []string{"Body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderedSelection(columns, tt.checked)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("orderedSelection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressFraction(t *testing.T) {
	if got := progressFraction(table.Progress{Done: 1, Total: 4}); got != 0.25 {
		t.Errorf("progressFraction() = %v, want 0.25", got)
	}
	if got := progressFraction(table.Progress{}); got != 0 {
		t.Errorf("progressFraction() with zero total = %v, want 0", got)
	}
}

func TestLanguageLabel(t *testing.T) {
	if got := languageLabel("  Japanese ", "English"); got != "Japanese" {
		t.Errorf("languageLabel() = %q, want Japanese", got)
	}
	if got := languageLabel("   ", "English"); got != "English" {
		t.Errorf("languageLabel() = %q, want English", got)
	}
}

func TestPlacementFor(t *testing.T) {
	if placementFor(true) != table.NewColumn {
		t.Error("Expected NewColumn when the check is set")
	}
	if placementFor(false) != table.Overwrite {
		t.Error("Expected Overwrite when the check is clear")
	}
}
