package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	if info == "" {
		t.Fatal("Info() returned empty string")
	}
	if !strings.HasPrefix(info, "seoscribe-tui ") {
		t.Errorf("Info() = %q, want seoscribe-tui prefix", info)
	}
}

func TestEnsureInitialized(t *testing.T) {
	ensureInitialized()
	if Version == "" {
		t.Error("Version should be set after initialization")
	}
	if Commit == "" {
		t.Error("Commit should be set after initialization")
	}
	if Date == "" {
		t.Error("Date should be set after initialization")
	}
}
