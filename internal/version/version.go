package version

import (
	"runtime/debug"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
)

const (
	versionDevel   = "devel"
	versionUnknown = "unknown"
)

// version is set via ldflags at build time.
// falls back to debug.ReadBuildInfo for go install.
var version = versionDevel

var once sync.Once

func Get() string {
	once.Do(func() {
		if version != versionDevel {
			return
		}
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if v := info.Main.Version; v != "" && v != "("+versionDevel+")" {
			version = v
		}
	})
	return version
}

// IsDevelopment returns true for versions that should skip update checks.
func IsDevelopment(v string) bool {
	return v == versionDevel || v == versionUnknown || v == "" ||
		strings.Contains(v, "dirty") ||
		strings.Contains(v, "-0.")
}

// IsNewer reports whether latest is a newer release than current.
// Development builds are never considered outdated.
func IsNewer(current, latest string) bool {
	if IsDevelopment(current) {
		return false
	}
	return semver.Compare(canonical(current), canonical(latest)) < 0
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
