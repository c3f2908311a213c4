package ldtest

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not. It is called
// for group scopes as well as for the tests inside them; a group that is filtered out is not
// entered at all.
type Filter func(TestID) bool

// RegexFilters selects tests by name, using the -run and -skip command-line options.
//
// A -run pattern is matched the same way as by "go test -run": it is split on slashes that are
// not inside brackets or escaped, and each part must match the test name at the same level.
// A scope with fewer levels than the pattern is run if the levels it has all match, since one
// of its subtests may match the rest. So "pet/get pet by ID" runs the group "pet" and then
// only its subtests containing "get pet by ID", and "/sold" runs every group but only the
// subtests named like "sold".
//
// A -skip pattern is matched against the whole slash-separated test ID, and excludes the test
// and everything under it.
type RegexFilters struct {
	MustMatch    PathRegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(id)) &&
		!r.MustNotMatch.AnyMatch(id.String())
}

// ExactMatchPattern returns a -run pattern that selects exactly one test, along with the
// groups that contain it.
func ExactMatchPattern(id TestID) string {
	parts := make([]string, 0, len(id.Path))
	for _, name := range id.Path {
		parts = append(parts, "^"+regexp.QuoteMeta(name)+"$")
	}
	return strings.Join(parts, "/")
}

// RegexList is a set of patterns that are matched against a whole string.
type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

type pathPattern struct {
	source string
	levels []*regexp.Regexp
}

// matches reports whether every level that both the pattern and the path have in common
// matches.
func (p pathPattern) matches(path []string) bool {
	for i, name := range path {
		if i >= len(p.levels) {
			break
		}
		if !p.levels[i].MatchString(name) {
			return false
		}
	}
	return true
}

// PathRegexList is a set of patterns that are matched level by level against a TestID.
type PathRegexList struct {
	patterns []pathPattern
}

func (r PathRegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.source+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *PathRegexList) Set(value string) error {
	p := pathPattern{source: value}
	for _, part := range splitPattern(value) {
		rx, err := regexp.Compile(part)
		if err != nil {
			return fmt.Errorf("invalid regex %q: %w", part, err)
		}
		p.levels = append(p.levels, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

func (r PathRegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r PathRegexList) AnyMatch(id TestID) bool {
	for _, p := range r.patterns {
		if p.matches(id.Path) {
			return true
		}
	}
	return false
}

// splitPattern splits a pattern on every slash that is not escaped or inside brackets.
func splitPattern(pattern string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	escaped := false
	for _, ch := range pattern {
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '[':
			depth++
		case ch == ']' && depth > 0:
			depth--
		case ch == '/' && depth == 0:
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(ch)
	}
	return append(parts, current.String())
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}
}
