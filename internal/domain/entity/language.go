package entity

// DefaultLanguage is used when the request omits or misspells the
// language selector.
const DefaultLanguage = "English"

// languageNames maps the request-level language label to the localized
// display name embedded in prompts, so the model answers in that
// language.
var languageNames = map[string]string{
	"English":               "English",
	"Korean":                "한국어",
	"Japanese":              "日本語",
	"Chinese (Simplified)":  "简体中文",
	"Chinese (Traditional)": "繁體中文",
	"Spanish":               "Español",
	"French":                "Français",
	"German":                "Deutsch",
	"Portuguese":            "Português",
	"Russian":               "Русский",
	"Italian":               "Italiano",
	"Arabic":                "العربية",
	"Hindi":                 "हिन्दी",
	"Vietnamese":            "Tiếng Việt",
	"Thai":                  "ไทย",
}

// ResolveLanguage returns the display name for a language label.
// Unknown labels fall back to English; there is no error path.
func ResolveLanguage(label string) string {
	if name, ok := languageNames[label]; ok {
		return name
	}
	return languageNames[DefaultLanguage]
}

// SupportedLanguages lists the recognized language labels.
func SupportedLanguages() []string {
	labels := make([]string, 0, len(languageNames))
	for label := range languageNames {
		labels = append(labels, label)
	}
	return labels
}
