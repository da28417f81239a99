// Package settings provides build metadata, per-run configuration, and
// context helpers shared by the suggest CLI and its packages.
package settings

import "time"

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "suggest"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// SourceSettings describes where the suggestion catalogue comes from.
type SourceSettings struct {
	FromStdin bool
	FromFlags bool
	Path      string
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration settings for a single execution of the application.
type Run struct {
	MinLogLevel int8
	LogFile     string
	Source      SourceSettings
	Debounce    time.Duration
	NoColor     bool
}

// NewCliParams returns the defaults for a CLI run: info logging to stderr,
// the catalogue read from a file argument and the default debounce.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Source: SourceSettings{
			FromStdin: false,
			FromFlags: false,
		},
		Debounce: 10 * time.Millisecond,
		NoColor:  false,
	}
}
