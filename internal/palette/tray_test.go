package palette

import (
	"errors"
	"testing"

	"github.com/1broseidon/gridsnap/internal/ipc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedBackend struct {
	choose  func(items []Item) (Item, error)
	prompts []string
	shown   [][]Item
}

func (b *scriptedBackend) Show(prompt string, items []Item, _ string) (Item, error) {
	b.prompts = append(b.prompts, prompt)
	b.shown = append(b.shown, items)
	return b.choose(items)
}

func pick(action string) func([]Item) (Item, error) {
	return func(items []Item) (Item, error) {
		for _, it := range items {
			if it.Action == action {
				return it, nil
			}
		}
		return Item{}, errors.New("no such action " + action)
	}
}

type fakeController struct {
	calls     []string
	profile   string
	autoStart *bool
}

func (c *fakeController) GetStatus() (*ipc.StatusData, error) {
	return &ipc.StatusData{Monitor: "DP-1", Profile: "Profile2", Rows: 2, Columns: 2}, nil
}
func (c *fakeController) Open() error     { c.calls = append(c.calls, "open"); return nil }
func (c *fakeController) Quick() error    { c.calls = append(c.calls, "quick"); return nil }
func (c *fakeController) Maximize() error { c.calls = append(c.calls, "maximize"); return nil }
func (c *fakeController) Exit() error     { c.calls = append(c.calls, "exit"); return nil }
func (c *fakeController) SetProfile(name string) error {
	c.calls = append(c.calls, "profile")
	c.profile = name
	return nil
}
func (c *fakeController) SetAutoStart(enabled bool) error {
	c.calls = append(c.calls, "autostart")
	c.autoStart = &enabled
	return nil
}

func newTray(b Backend, c Controller) *Tray {
	return &Tray{
		Backend:    b,
		Controller: c,
		Profiles:   []string{"Default", "Profile2", "Profile3"},
		ConfigPath: "/home/u/.config/gridsnap/config.yaml",
		About:      "gridsnap dev",
	}
}

func TestTrayItems_MarksCurrentProfile(t *testing.T) {
	tray := newTray(nil, nil)
	items := tray.Items(&ipc.StatusData{Profile: "Profile2"})

	require.True(t, items[0].IsHeader)
	assert.Equal(t, "profile:Default", items[1].Action)
	assert.False(t, items[1].IsActive)
	assert.True(t, items[2].IsActive)
	assert.Contains(t, labels(items), "Start at login: off")

	tray.AutoStart = true
	assert.Contains(t, labels(tray.Items(nil)), "Start at login: on")
}

func labels(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func TestTrayRun_Dispatches(t *testing.T) {
	for _, tc := range []string{"open", "quick", "maximize", "exit"} {
		t.Run(tc, func(t *testing.T) {
			c := &fakeController{}
			tray := newTray(&scriptedBackend{choose: pick(tc)}, c)
			require.NoError(t, tray.Run())
			assert.Equal(t, []string{tc}, c.calls)
		})
	}
}

func TestTrayRun_SelectsProfile(t *testing.T) {
	c := &fakeController{}
	tray := newTray(&scriptedBackend{choose: pick("profile:Profile3")}, c)

	require.NoError(t, tray.Run())
	assert.Equal(t, "Profile3", c.profile)
}

func TestTrayRun_TogglesAutoStart(t *testing.T) {
	c := &fakeController{}
	tray := newTray(&scriptedBackend{choose: pick("autostart")}, c)
	tray.AutoStart = true

	require.NoError(t, tray.Run())
	require.NotNil(t, c.autoStart)
	assert.False(t, *c.autoStart)
}

func TestTrayRun_OpensConfig(t *testing.T) {
	var opened string
	tray := newTray(&scriptedBackend{choose: pick("config")}, &fakeController{})
	tray.OpenFile = func(path string) error {
		opened = path
		return nil
	}

	require.NoError(t, tray.Run())
	assert.Equal(t, tray.ConfigPath, opened)
}

func TestTrayRun_AboutShowsSecondPalette(t *testing.T) {
	b := &scriptedBackend{}
	calls := 0
	b.choose = func(items []Item) (Item, error) {
		calls++
		if calls == 1 {
			return pick("about")(items)
		}
		return Item{}, ErrCancelled
	}

	require.NoError(t, newTray(b, &fakeController{}).Run())
	assert.Equal(t, []string{"gridsnap", "about"}, b.prompts)
	assert.Equal(t, "gridsnap dev", b.shown[1][0].Label)
}

func TestTrayRun_CancelIsNotAnError(t *testing.T) {
	c := &fakeController{}
	b := &scriptedBackend{choose: func([]Item) (Item, error) { return Item{}, ErrCancelled }}

	require.NoError(t, newTray(b, c).Run())
	assert.Empty(t, c.calls)
}
