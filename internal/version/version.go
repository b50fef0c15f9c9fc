// Package version holds the release number of lwfront and build metadata.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/maloquacious/semver"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	version = semver.Version{
		Major: 0,
		Minor: 1,
		Patch: 0,
		Build: semver.Commit(),
	}
)

// Overridable at build time via -ldflags "-X lwfront/internal/version.GitCommit=...".
var (
	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Version returns the semantic version of the tool.
func Version() semver.Version {
	return version
}

// Colored renders major.minor.patch with one colour per component.
// Colours follow color.NoColor, so pipes get plain text.
func Colored() string {
	return versionMajorColor.Sprint(version.Major) + "." +
		versionMinorColor.Sprint(version.Minor) + "." +
		versionPatchColor.Sprint(version.Patch)
}

// Info is the machine-readable form printed by `lwfront version --format json`.
type Info struct {
	Version    string `json:"version"`
	Core       string `json:"core"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Current collects Info for the running binary.
func Current() Info {
	return Info{
		Version:    version.String(),
		Core:       version.Core(),
		GitCommit:  GitCommit,
		GitMessage: GitMessage,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Banner is the human form; full adds build metadata lines.
func Banner(full bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "lwfront %s\n", Colored())
	if !full {
		return sb.String()
	}
	info := Current()
	fmt.Fprintf(&sb, "  version:  %s\n", info.Version)
	if info.GitCommit != "" {
		fmt.Fprintf(&sb, "  commit:   %s\n", info.GitCommit)
	}
	if info.GitMessage != "" {
		fmt.Fprintf(&sb, "  message:  %s\n", info.GitMessage)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(&sb, "  built:    %s\n", info.BuildDate)
	}
	fmt.Fprintf(&sb, "  go:       %s (%s)\n", info.GoVersion, info.Platform)
	return sb.String()
}
