// Package version provides version information for notice-tray.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is the version of notice-tray. This can be overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. This can be overridden at build time using ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// Current returns the comparable version of the running binary, or empty
// for development builds.
func Current() string {
	if Version == "development" {
		return ""
	}
	return Version
}

// Less reports whether version a is strictly less than version b.
// Dotted version strings are parsed leniently ("v" prefixes and missing
// components are tolerated). Unparseable versions fall back to a plain
// string comparison so the order stays total.
func Less(a, b string) bool {
	va, errA := semver.NewVersion(normalize(a))
	vb, errB := semver.NewVersion(normalize(b))
	if errA != nil || errB != nil {
		return a < b
	}
	return va.LessThan(vb)
}

func normalize(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}
