package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLanguageSupportedLabels(t *testing.T) {
	expected := map[string]string{
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

	assert.Len(t, SupportedLanguages(), len(expected))
	for label, name := range expected {
		assert.Equal(t, name, ResolveLanguage(label), "label %q", label)
	}
}

func TestResolveLanguageFallsBackToEnglish(t *testing.T) {
	for _, label := range []string{"", "Klingon", "korean", "EN", "english "} {
		assert.Equal(t, "English", ResolveLanguage(label), "label %q", label)
	}
}
