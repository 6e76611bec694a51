package gui

import (
	"strings"

	"codeberg.org/snonux/sheettrans/internal/table"
)

// orderedSelection returns the checked columns in sheet order
func orderedSelection(columns, checked []string) []string {
	set := make(map[string]bool, len(checked))
	for _, c := range checked {
		set[c] = true
	}

	var selected []string
	for _, c := range columns {
		if set[c] {
			selected = append(selected, c)
		}
	}
	return selected
}

// progressFraction converts a progress report into a bar value
func progressFraction(p table.Progress) float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

// languageLabel trims the value of an editable language select, falling
// back to def when empty
func languageLabel(value, def string) string {
	if value = strings.TrimSpace(value); value == "" {
		return def
	}
	return value
}

// placementFor maps the "new columns" check to a placement
func placementFor(newColumns bool) table.Placement {
	if newColumns {
		return table.NewColumn
	}
	return table.Overwrite
}
