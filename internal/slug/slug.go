// ABOUTME: Slug generation for note URLs.
// ABOUTME: Transliterates Cyrillic to Latin and folds accents before slugifying.

// Package slug turns free-form titles into URL-safe identifiers.
//
// Cyrillic letters are transliterated with a GOST-like table
// ("Заголовок" becomes "zagolovok"). Latin letters lose their diacritics.
// Anything outside [a-z0-9_] collapses into single hyphens.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "ju", 'я': "ja",
	// Ukrainian and Belarusian extras.
	'є': "ye", 'ї': "yi", 'і': "i", 'ґ': "g", 'ў': "u",
}

var lower = cases.Lower(language.Und)

// Transliterate replaces Cyrillic letters with Latin equivalents and strips
// combining marks from the rest. Case is preserved for the first Latin
// letter of a transliterated rune.
func Transliterate(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		lr := unicode.ToLower(r)
		latin, ok := cyrillic[lr]
		if !ok {
			sb.WriteRune(r)
			continue
		}
		if lr != r && latin != "" {
			latin = strings.ToUpper(latin[:1]) + latin[1:]
		}
		sb.WriteString(latin)
	}
	return foldAccents(sb.String())
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify lowercases the transliterated input, keeps [a-z0-9_] and joins
// the remaining words with single hyphens. Leading and trailing hyphens and
// underscores are stripped.
func Slugify(s string) string {
	s = lower.String(Transliterate(s))

	var sb strings.Builder
	pendingSep := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			if pendingSep && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingSep = false
			sb.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingSep = true
		}
	}
	return strings.Trim(sb.String(), "-_")
}

// Truncate cuts a slug to at most n bytes without leaving a trailing
// hyphen or underscore.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n], "-_")
}
