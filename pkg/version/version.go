package version

import "runtime/debug"

// Version represents the current version of shen
const Version = "0.4.0"

// Commit is set at build time with -ldflags "-X .../version.Commit=..."
var Commit = ""

// BuildVersion returns the version string for display
func BuildVersion() string {
	v := "shen version " + Version
	if c := commit(); c != "" {
		v += " (" + c + ")"
	}
	return v
}

// APIVersion returns just the version number for API responses
func APIVersion() string {
	return Version
}

func commit() string {
	if Commit != "" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
