// Package slug derives URL-safe identifiers from post titles.
package slug

import (
	"strconv"
	"strings"
	"time"
)

const maxLength = 100

var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Make builds the base slug for a title: lowercase, Cyrillic transliterated,
// anything outside [a-z0-9 -] dropped, whitespace runs collapsed to single
// hyphens, trimmed and truncated to 100 characters. Deterministic; may be
// empty for titles with no representable characters.
func Make(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		default:
			if mapped, ok := translit[r]; ok {
				b.WriteString(mapped)
			}
		}
	}

	s := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")

	if len(s) > maxLength {
		s = s[:maxLength]
		s = strings.TrimRight(s, "-")
	}
	return s
}

// Disambiguate appends an epoch-millisecond suffix to a colliding slug.
// The caller is responsible for the collision check; a second collision
// within the same millisecond is treated as negligible.
func Disambiguate(base string) string {
	return base + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
