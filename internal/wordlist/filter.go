package wordlist

import (
	"strings"
	"unicode"
)

// FilterFunc reports whether a word should be kept.
type FilterFunc func(string) bool

// alphabets lists the letters each language adds to a-z.
var alphabets = map[string]string{
	"en": "",
	"de": "äöüß",
	"es": "áéíñóúü",
	"fr": "àâæçéèêëîïôœùûüÿ",
	"it": "àèéìíîòóùú",
	"pt": "àáâãçéêíóôõú",
}

// FilterForLang keeps lowercase words spelled with the language's alphabet.
// Languages without a known alphabet keep words made of lowercase letters of
// any script.
func FilterForLang(lang string) FilterFunc {
	extra, ok := alphabets[strings.ToLower(lang)]
	if !ok {
		return func(word string) bool {
			return onlyRunes(word, func(r rune) bool {
				return unicode.IsLetter(r) && !unicode.IsUpper(r)
			})
		}
	}
	return func(word string) bool {
		return onlyRunes(word, func(r rune) bool {
			return ('a' <= r && r <= 'z') || strings.ContainsRune(extra, r)
		})
	}
}

func onlyRunes(word string, ok func(rune) bool) bool {
	if word == "" {
		return false
	}
	return strings.IndexFunc(word, func(r rune) bool { return !ok(r) }) < 0
}
