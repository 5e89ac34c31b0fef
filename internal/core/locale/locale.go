// Package locale models the fixed set of supported locales and matching
// against user preferences. All matching is pure; the set is immutable
// configuration established at process start.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Set is an immutable collection of supported locale codes with one default.
// The zero value is not usable; construct with NewSet or MustSet.
type Set struct {
	codes   []string // canonical codes in registration order, default first
	matcher language.Matcher
}

// NewSet builds a Set from the default code plus the remaining supported codes.
// The default is always a member and always first (the matcher falls back to it).
func NewSet(def string, others ...string) (*Set, error) {
	all := append([]string{def}, others...)
	tags := make([]language.Tag, 0, len(all))
	codes := make([]string, 0, len(all))
	seen := map[string]bool{}
	for _, c := range all {
		t, err := language.Parse(c)
		if err != nil {
			return nil, fmt.Errorf("unsupported locale code %q: %w", c, err)
		}
		canon := t.String()
		if seen[canon] {
			continue
		}
		seen[canon] = true
		tags = append(tags, t)
		codes = append(codes, canon)
	}
	return &Set{codes: codes, matcher: language.NewMatcher(tags)}, nil
}

// MustSet is NewSet that panics on invalid codes; for fixed startup config
func MustSet(def string, others ...string) *Set {
	s, err := NewSet(def, others...)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the designated default locale code
func (s *Set) Default() string { return s.codes[0] }

// Codes returns the supported codes, default first. Callers must not mutate
func (s *Set) Codes() []string { return s.codes }

// Canonical reports whether code names a supported locale, returning the
// canonical form ("pt-br" -> "pt-BR"). Membership is exact: a bare primary
// subtag does not match a region-qualified member here
func (s *Set) Canonical(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	t, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	canon := t.String()
	for _, c := range s.codes {
		if c == canon {
			return c, true
		}
	}
	return "", false
}

// FromAcceptLanguage matches an Accept-Language header against the set and
// returns the best supported code. A malformed header or no usable match
// reports false; it never fails the request
func (s *Set) FromAcceptLanguage(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return "", false
	}
	_, idx, conf := s.matcher.Match(prefs...)
	if conf == language.No {
		return "", false
	}
	return s.codes[idx], true
}
