// Package platforms carries the static knowledge about Apple SDKs needed
// to sanity-check a framework descriptor before it is handed to the
// generator: which SDKs exist, which architectures they support, and the
// oldest OS version each one still accepts.
//
// The deriver itself treats SDK and version as opaque; this check is an
// optional layer in front of it.
package platforms

import (
	"slices"

	"golang.org/x/mod/semver"

	"github.com/FuegoFro/rules-apple/pkgs/rule"
)

// Platform describes one Apple SDK.
type Platform struct {
	SDK string

	// Archs lists the architectures the SDK can target.
	Archs []string

	// FloorOS is the oldest minimum OS version the SDK accepts.
	FloorOS string
}

var platforms = map[string]Platform{
	"iphoneos": {
		SDK:     "iphoneos",
		Archs:   []string{"arm64", "arm64e", "armv7"},
		FloorOS: "9.0",
	},
	"iphonesimulator": {
		SDK:     "iphonesimulator",
		Archs:   []string{"x86_64", "arm64", "i386"},
		FloorOS: "9.0",
	},
	"macosx": {
		SDK:     "macosx",
		Archs:   []string{"x86_64", "arm64", "arm64e"},
		FloorOS: "10.10",
	},
	"appletvos": {
		SDK:     "appletvos",
		Archs:   []string{"arm64"},
		FloorOS: "9.0",
	},
	"appletvsimulator": {
		SDK:     "appletvsimulator",
		Archs:   []string{"x86_64", "arm64"},
		FloorOS: "9.0",
	},
	"watchos": {
		SDK:     "watchos",
		Archs:   []string{"arm64_32", "armv7k", "arm64"},
		FloorOS: "2.0",
	},
	"watchsimulator": {
		SDK:     "watchsimulator",
		Archs:   []string{"x86_64", "arm64", "i386"},
		FloorOS: "2.0",
	},
}

// Lookup returns the platform for sdk and whether it is known.
func Lookup(sdk string) (Platform, bool) {
	p, ok := platforms[sdk]
	return p, ok
}

// SDKs returns the known SDK identifiers, sorted.
func SDKs() []string {
	out := make([]string, 0, len(platforms))
	for sdk := range platforms {
		out = append(out, sdk)
	}
	slices.Sort(out)
	return out
}

// Check verifies that sdk is known, minOS parses as a version at or above
// the SDK's floor, and every architecture is supported by the SDK.
// Violations are *rule.ConfigError.
func Check(sdk, minOS string, archs []string) error {
	p, ok := Lookup(sdk)
	if !ok {
		return rule.Configf("unknown sdk %q", sdk)
	}
	v := canonical(minOS)
	if !semver.IsValid(v) {
		return rule.Configf("sdk %s: malformed minimum os version %q", sdk, minOS)
	}
	if semver.Compare(v, canonical(p.FloorOS)) < 0 {
		return rule.Configf("sdk %s: minimum os version %s is below the supported floor %s",
			sdk, minOS, p.FloorOS)
	}
	for _, arch := range archs {
		if !slices.Contains(p.Archs, arch) {
			return rule.Configf("sdk %s: unsupported architecture %q", sdk, arch)
		}
	}
	return nil
}

// canonical turns an Apple-style version like "12.0" into the "v12.0" form
// that golang.org/x/mod/semver expects.
func canonical(v string) string {
	return "v" + v
}
