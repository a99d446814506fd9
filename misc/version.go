// Package misc keeps program identity set at link time.
package misc

import "runtime/debug"

var (
	appName = "rpw"
	version = "dev"
	gitHash = ""
)

// GetAppName returns name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}

// GetVersion returns program version (set with -ldflags "-X rpw/misc.version=...").
func GetVersion() string {
	return version
}

// GetGitHash returns source revision the program was built from.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
