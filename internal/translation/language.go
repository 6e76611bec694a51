package translation

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Languages lists the labels offered by default in the GUI
var Languages = []string{"English", "Chinese"}

// LanguageName renders a language label for a prompt. Labels that parse as
// BCP 47 tags ("zh", "en-GB") become English display names, anything else
// is returned unchanged.
func LanguageName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return label
	}

	tag, err := language.Parse(strings.ReplaceAll(label, "_", "-"))
	if err != nil || tag == language.Und {
		return label
	}

	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return label
}
