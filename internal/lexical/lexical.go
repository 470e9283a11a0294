// Package lexical extracts words and likely nouns from chat text.
//
// The noun detection is a heuristic built for Polish group chats: a fixed
// whitelist plus common noun endings. False positives are expected.
package lexical

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const minWordLength = 3

var urlPattern = regexp.MustCompile(`https?://\S+`)

// isWordRune matches the runes that make up a word run (letters, digits, underscore).
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isAlphabetRune matches the runes a counted word may consist of.
func isAlphabetRune(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	return strings.ContainsRune("ąćęłńóśźż", r)
}

// ExtractWords returns the lower-cased words of text that are at least three
// letters long, consist only of latin/Polish letters and are not stopwords.
// URLs are removed before tokenizing.
func ExtractWords(text string) []string {
	text = urlPattern.ReplaceAllString(norm.NFC.String(text), "")
	text = strings.ToLower(text)

	var words []string
	for _, run := range strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) }) {
		if utf8.RuneCountInString(run) < minWordLength {
			continue
		}
		if strings.IndexFunc(run, func(r rune) bool { return !isAlphabetRune(r) }) >= 0 {
			continue
		}
		if _, stop := stopwords[run]; stop {
			continue
		}
		words = append(words, run)
	}
	return words
}

// IsLikelyNoun reports whether word is probably a noun. The bare suffix
// itself (or suffix plus one letter) is never classified as a noun.
func IsLikelyNoun(word string) bool {
	word = strings.ToLower(word)

	if _, ok := commonNouns[word]; ok {
		return true
	}

	length := utf8.RuneCountInString(word)
	for _, suffix := range nounSuffixes {
		if strings.HasSuffix(word, suffix) && length > utf8.RuneCountInString(suffix)+1 {
			return true
		}
	}
	return false
}

// ExtractNouns returns the words of text classified as likely nouns, in order.
func ExtractNouns(text string) []string {
	var nouns []string
	for _, w := range ExtractWords(text) {
		if IsLikelyNoun(w) {
			nouns = append(nouns, w)
		}
	}
	return nouns
}
