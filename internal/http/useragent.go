package http

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// AppName is the product token of the synthesized User-Agent.
const AppName = "jobboard"

// Version is overridden at build time with -ldflags.
var Version = "0.1.0"

// DefaultUserAgent describes the application and the platform it runs on,
// e.g. "jobboard/0.1.0 (github.com/wesleyorama2/jobboard; build:1a2b3c4; linux amd64)".
func DefaultUserAgent() string {
	module, build := "unknown", "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Path != "" {
			module = info.Main.Path
		}
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				build = setting.Value
				if len(build) > 7 {
					build = build[:7]
				}
			}
		}
	}
	return fmt.Sprintf("%s/%s (%s; build:%s; %s %s)",
		AppName, Version, module, build, runtime.GOOS, runtime.GOARCH)
}
