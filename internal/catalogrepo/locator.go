package catalogrepo

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var ErrInvalidLocator = errors.New("invalid catalog locator")

// scpLikeRegex matches git's scp-style syntax, e.g. git@github.com:org/repo.git
var scpLikeRegex = regexp.MustCompile(`^[^@/:\s]+@[^@/:\s]+:\S+$`)

var clonableSchemes = map[string]bool{
	"https": true,
	"http":  true,
	"ssh":   true,
	"git":   true,
	"file":  true,
}

// Locator identifies a catalog: where to clone it from and which ref to check out.
// An empty Ref means "not pinned".
type Locator struct {
	CloneURL string
	Ref      string
}

func (l Locator) HasRef() bool {
	return l.Ref != ""
}

// String returns "url@ref", or just the url when no ref is set.
func (l Locator) String() string {
	if l.Ref == "" {
		return l.CloneURL
	}
	return l.CloneURL + "@" + l.Ref
}

// ParseLocator parses "<git-url>" or "<git-url>@<ref>".
//
// The ref is the segment after the last "@", but only when what precedes it is
// a complete git location on its own and the segment has no ":". That keeps the
// user part of SSH URLs (git@host:org/repo.git) from being mistaken for a ref.
func ParseLocator(s string) (Locator, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Locator{}, fmt.Errorf("%w: locator is empty", ErrInvalidLocator)
	}
	if strings.HasSuffix(s, "@") {
		return Locator{}, fmt.Errorf("%w: %q ends with '@' but names no ref", ErrInvalidLocator, s)
	}

	cloneURL, ref := splitRef(s)
	if !isClonable(cloneURL) {
		return Locator{}, fmt.Errorf("%w: %q is not a git URL (expected https://, ssh://, git://, file:// or user@host:path)", ErrInvalidLocator, cloneURL)
	}

	return Locator{CloneURL: cloneURL, Ref: ref}, nil
}

func splitRef(s string) (string, string) {
	idx := strings.LastIndex(s, "@")
	if idx <= 0 {
		return s, ""
	}

	prefix, suffix := s[:idx], s[idx+1:]
	if strings.Contains(suffix, ":") {
		return s, ""
	}

	location := prefix
	if i := strings.Index(location, "://"); i >= 0 {
		location = location[i+len("://"):]
	}
	// Only a user name precedes the "@": it's userinfo, not a ref separator.
	if !strings.ContainsAny(location, "/:") {
		return s, ""
	}

	return prefix, suffix
}

func isClonable(raw string) bool {
	if strings.ContainsAny(raw, " \t\n") {
		return false
	}

	if scpLikeRegex.MatchString(raw) {
		return true
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if !clonableSchemes[strings.ToLower(u.Scheme)] {
		return false
	}
	if u.Scheme == "file" {
		return u.Path != ""
	}
	return u.Host != ""
}
