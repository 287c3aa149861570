package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Build metadata of the racc CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version; it is also written into table file headers.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric part in its own color. Parts
// that are not major.minor.patch are left as they are.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := fmt.Sprintf("%s.%s.%s",
		versionMajorColor.Sprint(parts[0]),
		versionMinorColor.Sprint(parts[1]),
		versionPatchColor.Sprint(parts[2]))
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// ShortCommit is the first 7 characters of GitCommit.
func ShortCommit() string {
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}
