package http

import (
	"runtime"
	"strings"
	"testing"
)

func TestDefaultUserAgent(t *testing.T) {
	ua := DefaultUserAgent()

	if !strings.HasPrefix(ua, AppName+"/"+Version+" (") {
		t.Errorf("Expected user agent to start with product token, got %s", ua)
	}
	if !strings.Contains(ua, "build:") {
		t.Errorf("Expected build information, got %s", ua)
	}
	if !strings.HasSuffix(ua, runtime.GOOS+" "+runtime.GOARCH+")") {
		t.Errorf("Expected platform information, got %s", ua)
	}
}
