package handler

import (
	"net/http"
	"runtime"
	"runtime/debug"
	"sync"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Build-time variables, injected via ldflags. Version is overridden from VERSION at startup.
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

var readBuildInfo = sync.OnceValue(func() VersionInfo {
	info := VersionInfo{GoVersion: runtime.Version()}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.GitCommit = s.Value
		case "vcs.time":
			info.BuildTime = s.Value
		}
	}
	return info
})

// CurrentVersion merges ldflags values over the VCS stamp embedded by the go tool
func CurrentVersion() VersionInfo {
	info := readBuildInfo()
	info.Version = Version
	if info.Version == "" {
		info.Version = "dev"
	}
	if BuildTime != "" {
		info.BuildTime = BuildTime
	}
	if GitCommit != "" {
		info.GitCommit = GitCommit
	}
	return info
}

// HandleVersion returns version information about the application
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, CurrentVersion())
	}
}
