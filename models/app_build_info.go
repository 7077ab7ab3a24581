package models

import "fmt"

// NotAvailable stands in for build metadata the linker did not set.
const NotAvailable = "N/A"

// AppBuildInfo is the version metadata injected with -ldflags -X at build
// time. Any field may be empty in a plain `go build`.
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{Version: version, Date: date, Commit: commit}
}

// Response renders the info as served on GET /version. A non-empty
// override replaces the build version.
func (a AppBuildInfo) Response(override string) VersionResponse {
	resp := VersionResponse{
		Version: orNotAvailable(a.Version),
		Date:    orNotAvailable(a.Date),
		Commit:  orNotAvailable(a.Commit),
	}
	if override != "" {
		resp.Version = override
	}
	return resp
}

// String is the startup banner printed by the server binary.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s",
		orNotAvailable(a.Version), orNotAvailable(a.Date), orNotAvailable(a.Commit))
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
