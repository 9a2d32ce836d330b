// Package versions is the single place where devcat parses and compares
// semantic versions. Tag resolution, min_cli_version gating and VERSION file
// checks all go through it.
package versions

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var ErrNotRelease = errors.New("not a MAJOR.MINOR.PATCH release version")

// ParseRelease parses a strict MAJOR.MINOR.PATCH string. A leading "v",
// pre-release suffixes and build metadata are all rejected.
func ParseRelease(s string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s, ErrNotRelease)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return nil, fmt.Errorf("%q: %w", s, ErrNotRelease)
	}
	return v, nil
}

// IsRelease reports whether s is a strict MAJOR.MINOR.PATCH string.
func IsRelease(s string) bool {
	_, err := ParseRelease(s)
	return err == nil
}

// IsSemver reports whether s is a valid strict semantic version. Unlike
// IsRelease, pre-release and build metadata are allowed.
func IsSemver(s string) bool {
	_, err := semver.StrictNewVersion(s)
	return err == nil
}

// Compare returns -1, 0 or 1. Both arguments must be valid semantic versions.
func Compare(a, b string) (int, error) {
	va, err := semver.NewVersion(a)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", a, err)
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", b, err)
	}
	return va.Compare(vb), nil
}

// AtLeast reports whether current satisfies the minimum. Both are parsed
// leniently so CLI build strings like "v1.4.0" work.
func AtLeast(current, minimum string) (bool, error) {
	cmp, err := Compare(current, minimum)
	if err != nil {
		return false, err
	}
	return cmp >= 0, nil
}

// LatestRelease picks the highest release tag that is >= floor. Tags that are
// not strict MAJOR.MINOR.PATCH are ignored. The boolean is false when no tag
// qualifies.
func LatestRelease(tags []string, floor string) (string, bool, error) {
	floorVersion, err := ParseRelease(floor)
	if err != nil {
		return "", false, fmt.Errorf("invalid minimum version: %w", err)
	}

	var qualifying []*semver.Version
	original := make(map[*semver.Version]string)
	for _, tag := range tags {
		v, err := ParseRelease(strings.TrimSpace(tag))
		if err != nil {
			continue
		}
		if v.LessThan(floorVersion) {
			continue
		}
		qualifying = append(qualifying, v)
		original[v] = tag
	}

	if len(qualifying) == 0 {
		return "", false, nil
	}

	sort.Sort(semver.Collection(qualifying))
	latest := qualifying[len(qualifying)-1]
	return original[latest], true, nil
}

// Clean strips decorations from a CLI build string ("version v1.2.3") so it can
// be compared. The result has no leading "v".
func Clean(buildVersion string) string {
	cleaned := strings.Replace(buildVersion, "version", "", 1)
	cleaned = strings.TrimSpace(cleaned)
	return strings.TrimPrefix(cleaned, "v")
}
