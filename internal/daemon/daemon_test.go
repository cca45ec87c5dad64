package daemon

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/gridsnap/internal/autostart"
	"github.com/1broseidon/gridsnap/internal/config"
	"github.com/1broseidon/gridsnap/internal/coordinator"
	"github.com/1broseidon/gridsnap/internal/grid"
	"github.com/1broseidon/gridsnap/internal/layoutstore"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePicker struct {
	mu     sync.Mutex
	posted []coordinator.Message
	status coordinator.Status
}

func (f *fakePicker) Post(msg coordinator.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, msg)
}

func (f *fakePicker) Status(context.Context) (coordinator.Status, error) {
	return f.status, nil
}

func (f *fakePicker) messages() []coordinator.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]coordinator.Message(nil), f.posted...)
}

func newTestDaemon(t *testing.T) (*Daemon, *fakePicker, *int) {
	t.Helper()
	dir := t.TempDir()
	p := &fakePicker{}
	quits := 0
	d := &Daemon{
		configPath:    filepath.Join(dir, "config.yaml"),
		layoutsPath:   filepath.Join(dir, "layouts.yaml"),
		autostartPath: filepath.Join(dir, "autostart", "gridsnap.desktop"),
		logger:        log.New(io.Discard),
		started:       time.Now().Add(-90 * time.Second),
		picker:        p,
		quit:          func() { quits++ },
		executable:    func() (string, error) { return "/usr/local/bin/gridsnap", nil },
		cfg:           config.DefaultConfig(),
	}
	return d, p, &quits
}

func TestSettings_MapsMargins(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Margins = 7
	cfg.WindowPadding = 12
	cfg.GridMargins = 2
	cfg.Profiles = []string{"Default", "Work"}

	s := Settings(cfg)
	assert.Equal(t, grid.Margins{Grid: 2, Zone: 7, Border: 12}, s.Margins)
	assert.Equal(t, []string{"Default", "Work"}, s.Profiles)

	cfg.Profiles[1] = "Home"
	assert.Equal(t, "Work", s.Profiles[1])
}

func TestStartProfile_FirstConfigured(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Profiles = []string{"Work", "Home"}
	assert.Equal(t, "Work", StartProfile(cfg))

	cfg.Profiles = nil
	assert.Equal(t, layoutstore.DefaultProfile, StartProfile(cfg))
}

func TestLogLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, log.InfoLevel, LogLevel(cfg))
	cfg.LogLevel = "debug"
	assert.Equal(t, log.DebugLevel, LogLevel(cfg))
	cfg.LogLevel = "nonsense"
	assert.Equal(t, log.InfoLevel, LogLevel(cfg))
}

func TestReload_PostsSettings(t *testing.T) {
	d, p, _ := newTestDaemon(t)
	require.NoError(t, os.WriteFile(d.configPath, []byte("margins: 4\nwindow_padding: 6\n"), 0644))

	require.NoError(t, d.Reload())

	msgs := p.messages()
	require.Len(t, msgs, 1)
	changed, ok := msgs[0].(coordinator.SettingsChanged)
	require.True(t, ok)
	assert.Equal(t, grid.Margins{Grid: 3, Zone: 4, Border: 6}, changed.Settings.Margins)
	assert.Equal(t, 4, d.cfg.Margins)
}

func TestReload_InvalidConfigKeepsPrevious(t *testing.T) {
	d, p, _ := newTestDaemon(t)
	require.NoError(t, os.WriteFile(d.configPath, []byte("margins: 999\n"), 0644))

	require.Error(t, d.Reload())
	assert.Empty(t, p.messages())
	assert.Equal(t, 10, d.cfg.Margins)
}

func TestSetAutoStart_UpdatesConfigAndEntry(t *testing.T) {
	d, _, _ := newTestDaemon(t)

	require.NoError(t, d.SetAutoStart(true))

	data, err := os.ReadFile(d.configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "auto_start: true")
	assert.True(t, autostart.Enabled(d.autostartPath))
	assert.True(t, d.cfg.AutoStart)

	entry, err := os.ReadFile(d.autostartPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(entry), "Exec=/usr/local/bin/gridsnap daemon"))

	require.NoError(t, d.SetAutoStart(false))
	assert.False(t, autostart.Enabled(d.autostartPath))

	res, err := config.LoadFromPath(d.configPath)
	require.NoError(t, err)
	assert.False(t, res.Config.AutoStart)
}

func TestStatus_AddsPaths(t *testing.T) {
	d, p, _ := newTestDaemon(t)
	p.status = coordinator.Status{
		State:        coordinator.Picking,
		Session:      "abc",
		Monitor:      "DP-1",
		Profile:      "Default",
		Rows:         2,
		Columns:      3,
		ActiveWindow: 42,
	}

	st, err := d.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "picking", st.State)
	assert.Equal(t, "abc", st.Session)
	assert.Equal(t, "DP-1", st.Monitor)
	assert.Equal(t, 2, st.Rows)
	assert.Equal(t, 3, st.Columns)
	assert.Equal(t, uint32(42), st.ActiveWindow)
	assert.Equal(t, d.configPath, st.ConfigPath)
	assert.Equal(t, d.layoutsPath, st.LayoutsPath)
	assert.GreaterOrEqual(t, st.UptimeSeconds, int64(90))
}

func TestShutdown_PostsExitAndQuits(t *testing.T) {
	d, p, quits := newTestDaemon(t)

	d.Shutdown()

	assert.Equal(t, []coordinator.Message{coordinator.Exit{}}, p.messages())
	assert.Equal(t, 1, *quits)
}

func TestHotkeysChanged(t *testing.T) {
	a := config.DefaultConfig()
	b := config.DefaultConfig()
	assert.False(t, hotkeysChanged(a, b))
	b.HotkeyMaximizeToggle = "CTRL+ALT+M"
	assert.True(t, hotkeysChanged(a, b))
}
