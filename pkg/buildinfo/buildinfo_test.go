package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	Version, Commit, Date = "v1.0.0", "abc123", "2025-01-01"
	got := Get()
	if got != (Info{Version: "v1.0.0", Commit: "abc123", Date: "2025-01-01"}) {
		t.Errorf("Get() = %+v", got)
	}
	if !strings.Contains(String(), "commit: abc123") {
		t.Errorf("String() = %q", String())
	}
	if !strings.HasPrefix(Template(), "{{.Name}} version v1.0.0") {
		t.Errorf("Template() = %q", Template())
	}
}
