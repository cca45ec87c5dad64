package runtimepath

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got == "" {
		t.Fatal("Dir() returned empty path")
	}

	wantTmp := fmt.Sprintf("/tmp/gridsnap-runtime-%d", os.Getuid())
	if got != xdg.RuntimeDir && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, xdg.RuntimeDir, wantTmp)
	}
}

func TestSocketPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	socket, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if socket != td+"/gridsnap.sock" || !strings.HasSuffix(socket, "/gridsnap.sock") {
		t.Fatalf("SocketPath() = %q, missing suffix", socket)
	}
}
