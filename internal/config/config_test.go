package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 10, c.SharedState.Workers)
	assert.Equal(t, 0, c.SharedState.Initial)
	assert.Equal(t, time.Second, c.MessagePassing.SendInterval)
	assert.Equal(t, [][]string{
		{"hi", "from", "the", "thread"},
		{"more", "messages", "for", "you"},
	}, c.MessagePassing.Producers)
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gosync.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
shared_state:
  workers: 3
  initial: 7
message_passing:
  send_interval: 5ms
  producers:
    - ["a", "b"]
`), 0o644))
	t.Setenv(EnvPath, path)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, c.SharedState.Workers)
	assert.Equal(t, 7, c.SharedState.Initial)
	assert.Equal(t, 5*time.Millisecond, c.MessagePassing.SendInterval)
	assert.Equal(t, [][]string{{"a", "b"}}, c.MessagePassing.Producers)
}

func TestLoadWithoutEnvUsesDefault(t *testing.T) {
	t.Setenv(EnvPath, "")
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, c.SharedState.Workers)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(EnvPath, filepath.Join(t.TempDir(), "missing.yml"))
	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"negative workers":  "shared_state: {workers: -1}\nmessage_passing: {producers: [[a]]}",
		"negative interval": "message_passing: {send_interval: -1s, producers: [[a]]}",
		"no producers":      "shared_state: {workers: 1}",
		"bad yaml":          "shared_state: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}
