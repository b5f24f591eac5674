package conversation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

// MaxFactLength bounds a remembered fact in characters.
const MaxFactLength = 500

// rememberIntent matches an explicit request to remember something at the start
// of the utterance (after an optional polite prefix) and captures the request
// form, the connector and the fact.
var rememberIntent = regexp.MustCompile(`(?is)^\s*(?:(?:please|pls|hey|ok|okay|and|also)[\s,]+)*` +
	`((?:can|could|would) you\s+)?` +
	`(?:remember|note|don'?t forget|do not forget|keep in mind|make a note)` +
	`(?:\s+(that|this|of|to remember))?\s*[:,-]?\s+(.+)$`)

// recallWords open a question about the past rather than a fact to keep,
// as in "remember when we talked" or "remember me?".
var recallWords = map[string]bool{
	"what": true, "when": true, "where": true, "who": true, "how": true,
	"why": true, "if": true, "whether": true, "which": true, "me": true,
	"remember": true,
}

// ExtractFact returns the fact to persist from utterance, or "" when the
// utterance is not an explicit request to remember something.
func ExtractFact(utterance string) string {
	m := rememberIntent.FindStringSubmatch(utterance)
	if m == nil {
		return ""
	}
	request, connector, fact := m[1] != "", m[2] != "", m[3]

	// "Remember what I said?" asks; "Can you remember that ...?" requests.
	if !request && strings.HasSuffix(strings.TrimSpace(utterance), "?") {
		return ""
	}
	if !connector && recallWords[firstWord(fact)] {
		return ""
	}
	return normalizeFact(fact)
}

func firstWord(s string) string {
	f := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

func normalizeFact(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '.' || r == '!' || r == '?' || r == ',' || r == ';'
	})
	if utf8.RuneCountInString(s) > MaxFactLength {
		s = strings.TrimSpace(string([]rune(s)[:MaxFactLength]))
	}
	return s
}

// alreadyKnown reports whether fact matches prior memory, ignoring case.
func alreadyKnown(fact string, prior []model.MemoryEntry) bool {
	for _, e := range prior {
		if strings.EqualFold(strings.TrimSpace(e.Content), fact) {
			return true
		}
	}
	return false
}
