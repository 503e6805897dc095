package helper

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	reHyphen  = regexp.MustCompile(`-+`)
)

// Slugify turns free text into a lower-case, hyphen-separated slug. Diacritics
// are stripped (é → e) while letters of other scripts are kept. Empty results
// fall back to "file"; maxLen <= 0 means 100 runes.
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = norm.NFC.String(b.String())

	s = reNonWord.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxLen {
		s = strings.Trim(string([]rune(s)[:maxLen]), "-")
	}
	if s == "" {
		s = "file"
	}
	return s
}
