package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit, and BuildTime are set via ldflags at build time:
//
//	go build -ldflags "-X github.com/heartmarshall/ideascore-backend/internal/app.Version=1.0.0"
//
// A plain go build leaves Commit and BuildTime unset; BuildVersion then falls
// back to the VCS stamp the toolchain embeds in the binary.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const unknown = "unknown"

// BuildVersion returns the version string for the startup log and /health.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		commit, built = vcsStamp(info.Settings, commit, built)
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, commit, built)
}

// vcsStamp fills commit and built from the embedded VCS settings when ldflags
// did not set them. A revision taken from a modified tree gets "-dirty".
func vcsStamp(settings []debug.BuildSetting, commit, built string) (string, string) {
	var revision, modified string
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			if built == unknown && s.Value != "" {
				built = s.Value
			}
		case "vcs.modified":
			modified = s.Value
		}
	}

	if commit == unknown && revision != "" {
		commit = revision
		if len(commit) > 12 {
			commit = commit[:12]
		}
		if modified == "true" {
			commit += "-dirty"
		}
	}
	return commit, built
}
