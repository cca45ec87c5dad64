package layoutstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefault(t *testing.T) {
	key := Key{Monitor: "M1", Profile: DefaultProfile}
	s := Load(filepath.Join(t.TempDir(), "layouts.yaml"), key)

	assert.Equal(t, []Key{key}, s.Keys())
	assert.Equal(t, Entry{Rows: 2, Columns: 2}, s.Get(key))
}

func TestLoad_CorruptFileYieldsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{not yaml"), 0644))

	key := Key{Monitor: "HDMI-1", Profile: "Profile2"}
	s := Load(path, key)

	assert.Equal(t, []Key{key}, s.Keys())
}

func TestLoad_SkipsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.yaml")
	data := "DP-1:Default:\n  rows: 3\n  columns: 4\nbogus:\n  rows: 1\n  columns: 1\nDP-2:Default:\n  rows: 0\n  columns: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s := Load(path, Key{Monitor: "DP-1", Profile: DefaultProfile})

	assert.Equal(t, []Key{{Monitor: "DP-1", Profile: DefaultProfile}}, s.Keys())
	assert.Equal(t, Entry{Rows: 3, Columns: 4}, s.Get(Key{Monitor: "DP-1", Profile: DefaultProfile}))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "layouts.yaml")
	m1 := Key{Monitor: "M1", Profile: DefaultProfile}
	m2 := Key{Monitor: "M2", Profile: "Profile3"}

	s := Load(path, m1)
	s.Put(m1, Entry{Rows: 2, Columns: 3})
	s.Put(m2, Entry{Rows: 4, Columns: 1})
	require.NoError(t, s.Save())

	reloaded := Load(path, Key{Monitor: "other", Profile: DefaultProfile})
	assert.Equal(t, []Key{m1, m2}, reloaded.Keys())
	assert.Equal(t, Entry{Rows: 2, Columns: 3}, reloaded.Get(m1))
	assert.Equal(t, Entry{Rows: 4, Columns: 1}, reloaded.Get(m2))
}

func TestPutClampsToFloor(t *testing.T) {
	key := Key{Monitor: "M1", Profile: DefaultProfile}
	s := Load("", key)

	s.Put(key, Entry{Rows: 0, Columns: -3})
	assert.Equal(t, Entry{Rows: 1, Columns: 1}, s.Get(key))
}

func TestSave_EmptyPathFails(t *testing.T) {
	s := Load("", Key{Monitor: "M1", Profile: DefaultProfile})
	assert.Error(t, s.Save())
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{in: "DP-1:Default", want: Key{Monitor: "DP-1", Profile: "Default"}},
		{in: "eDP-1:Profile:2", want: Key{Monitor: "eDP-1", Profile: "Profile:2"}},
		{in: "DP-1", wantErr: true},
		{in: ":Default", wantErr: true},
		{in: "DP-1:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_ReportsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(dir, "layouts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DP-1:Default: {rows: 3, columns: 4}\n"), 0644))
	entries, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[Key]Entry{{Monitor: "DP-1", Profile: "Default"}: {Rows: 3, Columns: 4}}, entries)
}
