package abif

import (
	"fmt"
	"runtime/debug"
)

// Version is the semantic version of the abif library.
const Version = "0.2.0"

// Set with -ldflags "-X github.com/simonhull/abif.gitCommit=... -X github.com/simonhull/abif.buildTime=...".
var (
	gitCommit = ""
	buildTime = ""
)

// BuildInfo identifies the build of a binary linking this package.
type BuildInfo struct {
	Version   string
	Commit    string // VCS revision, "unknown" outside a VCS build
	BuildTime string
	GoVersion string
	Modified  bool // built from a dirty tree
}

// GetBuildInfo returns the library version and what the toolchain recorded
// about the build. Values passed through -ldflags take precedence over the
// embedded VCS stamps.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{Version: Version, Commit: "unknown", BuildTime: "unknown", GoVersion: "unknown"}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.time":
				info.BuildTime = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}

	if gitCommit != "" {
		info.Commit = gitCommit
	}
	if buildTime != "" {
		info.BuildTime = buildTime
	}
	return info
}

// String formats the build as "abif 0.2.0 (commit 1a2b3c4, built <time>, go1.26.0)".
func (b BuildInfo) String() string {
	commit := b.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if b.Modified {
		commit += "+dirty"
	}
	return fmt.Sprintf("abif %s (commit %s, built %s, %s)", b.Version, commit, b.BuildTime, b.GoVersion)
}
