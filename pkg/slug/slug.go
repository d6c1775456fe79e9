// Package slug generates URL-safe slugs from Bulgarian product and category names.
package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// cyrillicToLatin transliterates every letter of the Bulgarian Cyrillic
// alphabet (plus the Russian letters ё, ы, э that occasionally appear in
// imported product names) to an ASCII equivalent. Lowercase entries only;
// input is lowercased before transliteration.
var cyrillicToLatin = strings.NewReplacer(
	"а", "a", "б", "b", "в", "v", "г", "g", "д", "d", "е", "e", "ё", "yo",
	"ж", "zh", "з", "z", "и", "i", "й", "y", "к", "k", "л", "l", "м", "m",
	"н", "n", "о", "o", "п", "p", "р", "r", "с", "s", "т", "t", "у", "u",
	"ф", "f", "х", "h", "ц", "ts", "ч", "ch", "ш", "sh", "щ", "sht", "ъ", "a",
	"ы", "y", "ь", "", "э", "e", "ю", "yu", "я", "ya",
)

// Generate creates a URL-friendly slug from the given name.
// Cyrillic characters are transliterated to ASCII before slugification;
// anything the table does not cover is stripped by the final cleanup.
//
// Examples:
//   - "Кучета" → "kucheta"
//   - "Суха храна" → "suha-hrana"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	s = cyrillicToLatin.Replace(s)

	// Replace runs of non-alphanumeric characters with single hyphens.
	s = slugRegexp.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
