package ui

import (
	"fmt"
	"testing"
)

func TestLocalization_DefaultsToEnglish(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected default language 'en', got %s", l.GetCurrentLanguage())
	}
	if l.GetText(KeyStart) != "Start" {
		t.Errorf("Expected 'Start', got %s", l.GetText(KeyStart))
	}
}

func TestLocalization_SetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("zh")
	if l.GetText(KeyDontAskAgain) != "以后不再提示" {
		t.Errorf("Unexpected zh text: %s", l.GetText(KeyDontAskAgain))
	}

	// Unknown languages are ignored
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "zh" {
		t.Errorf("Expected language to stay 'zh', got %s", l.GetCurrentLanguage())
	}

	// System maps to English
	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected 'system' to map to 'en', got %s", l.GetCurrentLanguage())
	}
}

func TestLocalization_UnknownKeyFallsBackToKey(t *testing.T) {
	l := NewLocalization()

	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("Expected key fallback, got %s", got)
	}
}

func TestLocalization_AllLanguagesComplete(t *testing.T) {
	l := NewLocalization()
	english := l.texts["en"]

	for lang := range l.GetAvailableLanguages() {
		texts, ok := l.texts[lang]
		if !ok {
			t.Errorf("Language %s has no texts", lang)
			continue
		}
		for key := range english {
			if _, found := texts[key]; !found {
				t.Errorf("Language %s is missing key %s", lang, key)
			}
		}
	}
}

func TestLocalization_MaxTabsFormat(t *testing.T) {
	l := NewLocalization()

	got := fmt.Sprintf(l.GetText(KeyMaxTabs), 4)
	if got != "At most 4 tabs can be open!" {
		t.Errorf("Unexpected max tabs text: %s", got)
	}
}
