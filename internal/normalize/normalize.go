// Package normalize turns raw scraped posting fields into the canonical
// forms the dedup and matching services compare against.
package normalize

import (
	"html"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases, strips diacritics and collapses whitespace.
// "Développeur  Sénior" -> "developpeur senior".
// The transform chain is built per call: chained transformers carry
// state and must not be shared across requests.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return CollapseSpaces(strings.ToLower(result))
}

// CollapseSpaces trims and squashes runs of whitespace to single spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Text unescapes HTML entities, folds and collapses. Used on every
// free-text field before comparison.
func Text(s string) string {
	return Fold(html.UnescapeString(s))
}

// CanonicalURL reduces a posting URL to its identity form: lowercase
// host without "www.", path without trailing slash, no scheme, no
// query, no fragment. Tracking parameters (utm_*, ref) are the main
// reason query strings are dropped wholesale.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		// Unparseable URLs still need a stable key
		return strings.ToLower(raw)
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	path := strings.TrimRight(u.Path, "/")
	return host + path
}

// Domain extracts the lowercase registered host from a URL, without
// "www.". Returns "" when no host can be found.
func Domain(raw string) string {
	canon := CanonicalURL(raw)
	if canon == "" {
		return ""
	}
	if i := strings.IndexByte(canon, '/'); i >= 0 {
		canon = canon[:i]
	}
	return canon
}

// contractAliases maps scraped contract-type strings to the enum the
// matcher filters on.
var contractAliases = map[string]string{
	"permanent": "permanent", "full-time": "permanent", "full time": "permanent",
	"fulltime": "permanent", "cdi": "permanent", "perm": "permanent",
	"contract": "contract", "freelance": "contract", "contractor": "contract",
	"temporary": "contract", "interim": "contract", "b2b": "contract",
	"internship": "internship", "intern": "internship", "stage": "internship",
	"apprenticeship": "internship",
}

// ContractType normalizes a scraped contract-type string to one of
// permanent, contract, internship or "" (unknown).
func ContractType(s string) string {
	return contractAliases[Fold(s)]
}

// ExperienceLevel normalizes a scraped seniority string to entry, mid,
// senior or "" (unknown).
func ExperienceLevel(s string) string {
	folded := Fold(s)
	switch {
	case folded == "":
		return ""
	case containsAny(folded, "senior", "staff", "principal", "lead", "architect"):
		return "senior"
	case containsAny(folded, "junior", "entry", "graduate", "trainee", "intern", "fresher"):
		return "entry"
	case containsAny(folded, "mid", "intermediate", "confirmed"):
		return "mid"
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
