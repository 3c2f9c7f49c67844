package version

import "runtime/debug"

// Build information set by ldflags:
//
//	-X github.com/fezjo/basrs/internal/version.Version={{.Version}}
//	-X github.com/fezjo/basrs/internal/version.Commit={{.Commit}}
//	-X github.com/fezjo/basrs/internal/version.Date={{.Date}}
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Binaries built with `go install` carry no ldflags; fall back to the
// module version and VCS stamps the toolchain embedded.
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	fillFromBuildInfo(info)
}

func fillFromBuildInfo(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "unknown" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}
