package version

import (
	"runtime/debug"
	"sync"
)

// ModulePath is the import path of the routekit module.
const ModulePath = "github.com/kbukum/routekit"

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
)

// Info represents version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
	IsDirty   bool   `json:"is_dirty"`
}

var (
	once   sync.Once
	cached Info
)

// Get returns the version information. Build information is read once.
func Get() Info {
	once.Do(func() {
		cached = resolve(Version, GitCommit, readBuildInfo())
	})
	return cached
}

func readBuildInfo() *debug.BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return bi
}

func resolve(ver, commit string, bi *debug.BuildInfo) Info {
	info := Info{Version: ver, GitCommit: commit}
	if bi == nil {
		return info
	}
	info.GoVersion = bi.GoVersion

	if info.Version == "dev" {
		if bi.Main.Path == ModulePath && validModuleVersion(bi.Main.Version) {
			info.Version = bi.Main.Version
		}
		for _, dep := range bi.Deps {
			if dep.Path == ModulePath && validModuleVersion(dep.Version) {
				info.Version = dep.Version
			}
		}
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = setting.Value
				if len(info.GitCommit) > 7 {
					info.GitCommit = info.GitCommit[:7]
				}
			}
		case "vcs.modified":
			info.IsDirty = setting.Value == "true"
		}
	}
	return info
}

func validModuleVersion(v string) bool {
	return v != "" && v != "(devel)"
}

// UserAgent returns the User-Agent the default transport sends.
func UserAgent() string {
	return "routekit/" + Get().Version
}
