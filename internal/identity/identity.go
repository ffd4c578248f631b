package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and strips combining diacritical marks so that accented
// spellings of the same name compare equal.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Matches reports whether two free-text person identifiers refer to the same
// person. The rule is deliberately loose: the leading tokens match on their
// first two characters and the remainders must be equal, both
// case-insensitively and diacritic-insensitively. "Bob Smith" therefore
// matches "Bo Smith" but not "Bob Jones".
func Matches(a, b string) bool {
	aLead, aRest := splitRef(a)
	bLead, bRest := splitRef(b)

	// Single-token references carry no remainder to disambiguate on, so they
	// only match their exact equal.
	if aRest == "" && bRest == "" {
		return aLead == bLead
	}

	if !leadsMatch(aLead, bLead) {
		return false
	}
	return aRest == bRest
}

func splitRef(ref string) (string, string) {
	ref = Fold(strings.TrimSpace(ref))
	lead, rest, found := strings.Cut(ref, " ")
	if !found {
		return ref, ""
	}
	return lead, strings.TrimSpace(rest)
}

func leadsMatch(a, b string) bool {
	ar := []rune(a)
	br := []rune(b)
	// Short leading tokens only match their exact equal.
	if len(ar) < 2 || len(br) < 2 {
		return a == b
	}
	return ar[0] == br[0] && ar[1] == br[1]
}

// MentionsProfile reports whether text contains any of the given profile
// references, returning the first one found.
func MentionsProfile(text string, refs []string) (string, bool) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if strings.Contains(text, ref) {
			return ref, true
		}
	}
	return "", false
}
