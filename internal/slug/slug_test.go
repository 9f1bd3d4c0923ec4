// ABOUTME: Tests for slug transliteration and slugification.
// ABOUTME: Covers Cyrillic titles, accents, separators and truncation.

package slug

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"cyrillic title", "Заголовок заметки", "zagolovok-zametki"},
		{"multi-letter mappings", "Щука и ёж", "schuka-i-yozh"},
		{"soft and hard signs dropped", "Объявление о кресле", "objavlenie-o-kresle"},
		{"latin with accents", "Café Crème", "cafe-creme"},
		{"punctuation removed", "Hello, World!", "hello-world"},
		{"repeated separators collapse", "a  -- b", "a-b"},
		{"leading and trailing separators", "  -note- ", "note"},
		{"underscores kept", "note_slug", "note_slug"},
		{"outer underscores stripped", "_Hello_", "hello"},
		{"underscore next to separator", "_ - Привет - _", "privet"},
		{"digits kept", "План на 2024 год", "plan-na-2024-god"},
		{"nothing usable", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransliteratePreservesCase(t *testing.T) {
	if got := Transliterate("Жук"); got != "Zhuk" {
		t.Errorf("expected %q, got %q", "Zhuk", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abc-def", 4); got != "abc" {
		t.Errorf("expected trailing hyphen trimmed, got %q", got)
	}
	if got := Truncate("abc_def", 4); got != "abc" {
		t.Errorf("expected trailing underscore trimmed, got %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("expected short slug untouched, got %q", got)
	}
}
