package paths

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHome points the platform lookups at dir for the duration of the test.
func fakeHome(t *testing.T, dir string) {
	t.Helper()
	orig := platformDir
	platformDir.homeDir = func() (string, error) { return dir, nil }
	platformDir.userConfigDir = func() (string, error) { return filepath.Join(dir, "AppData"), nil }
	t.Cleanup(func() { platformDir = orig })
}

func TestDefaultDirs_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	fakeHome(t, "/home/adventurer")

	tests := []struct {
		name string
		xdg  map[string]string
		fn   func() (string, error)
		want string
	}{
		{"config from XDG", map[string]string{"XDG_CONFIG_HOME": "/tmp/xdg-config"}, DefaultConfigDir, "/tmp/xdg-config/satchel"},
		{"config fallback", map[string]string{"XDG_CONFIG_HOME": ""}, DefaultConfigDir, "/home/adventurer/.config/satchel"},
		{"data from XDG", map[string]string{"XDG_DATA_HOME": "/tmp/xdg-data"}, DefaultDataDir, "/tmp/xdg-data/satchel"},
		{"data fallback", map[string]string{"XDG_DATA_HOME": ""}, DefaultDataDir, "/home/adventurer/.local/share/satchel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.xdg {
				t.Setenv(k, v)
			}
			got, err := tt.fn()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultDirs_HomeError(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	orig := platformDir
	platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
	t.Cleanup(func() { platformDir = orig })
	t.Setenv("XDG_DATA_HOME", "")

	_, err := DefaultDataDir()
	assert.Error(t, err)
}

func TestResolveConfigDir(t *testing.T) {
	fakeHome(t, "/home/adventurer")
	t.Setenv("XDG_CONFIG_HOME", "")

	tests := []struct {
		name    string
		flag    string
		envVal  string
		wantSub string
	}{
		{"flag wins over env", "/explicit/config", "/env/config", "/explicit/config"},
		{"env wins when flag empty", "", "/env/config", "/env/config"},
		{"platform default when both empty", "", "", AppName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantSub)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	fakeHome(t, "/home/adventurer")
	t.Setenv("XDG_DATA_HOME", "")

	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{"flag wins over all", "/flag/data", "/config/data", "/env/data", "/flag/data"},
		{"config wins over env", "", "/config/data", "/env/data", "/config/data"},
		{"env when flag and config empty", "", "", "/env/data", "/env/data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("relative flag becomes absolute", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		got, err := ResolveDataDir("rel/data", "")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "data", filepath.Base(got))
	})

	t.Run("platform default when nothing set", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		got, err := ResolveDataDir("", "")
		require.NoError(t, err)
		assert.Equal(t, AppName, filepath.Base(got))
	})
}
