package autostart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_WritesAndRemovesEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autostart", "gridsnap.desktop")
	require.False(t, Enabled(path))

	require.NoError(t, Set(path, "/usr/local/bin/gridsnap", true))
	assert.True(t, Enabled(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Desktop Entry]\n")
	assert.Contains(t, string(data), "Exec=/usr/local/bin/gridsnap daemon\n")

	require.NoError(t, Set(path, "", false))
	assert.False(t, Enabled(path))

	// Disabling twice is fine.
	require.NoError(t, Set(path, "", false))
}

func TestEntry_QuotesExec(t *testing.T) {
	tests := []struct {
		exe  string
		want string
	}{
		{"/opt/gridsnap", "Exec=/opt/gridsnap daemon\n"},
		{"/home/me/my apps/gridsnap", "Exec=\"/home/me/my apps/gridsnap\" daemon\n"},
		{"/tmp/$x", "Exec=\"/tmp/\\$x\" daemon\n"},
	}
	for _, tt := range tests {
		t.Run(tt.exe, func(t *testing.T) {
			assert.Contains(t, Entry(tt.exe), tt.want)
		})
	}
}
