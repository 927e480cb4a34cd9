package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielledeleo/createpage/wiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	conf, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "createpage.db", conf.DatabaseFile)
	assert.Equal(t, "http://localhost:8080", conf.BaseURL)
	assert.Equal(t, wiki.DefaultArticlePath, conf.ArticlePath)
	assert.False(t, conf.UseRichEditor)
	assert.Equal(t, 5*time.Second, conf.StoreTimeout)
	assert.Equal(t, 12*time.Hour, conf.FormTokenMaxAge)

	_, err = os.Stat(path)
	require.NoError(t, err, "expected default config file to be written")

	// The written file must load back to the same values.
	again, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, conf.DatabaseFile, again.DatabaseFile)
	assert.Equal(t, conf.Host, again.Host)
	assert.Equal(t, conf.StoreTimeout, again.StoreTimeout)
	assert.Equal(t, conf.FormTokenMaxAge, again.FormTokenMaxAge)
	assert.Empty(t, again.Namespaces)
}

func TestLoad_MissingFileWithoutWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := Load(path, false)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "config file should not be created")
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
base_url: https://wiki.example.org
use_rich_editor: true
project_name: Periwiki
store_timeout: 250ms
namespaces:
  - id: 100
    name: Portal
    aliases: [P]
  - id: 10
    aliases: [T]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	conf, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, "https://wiki.example.org", conf.BaseURL)
	assert.True(t, conf.UseRichEditor)
	assert.Equal(t, "Periwiki", conf.ProjectName)
	assert.Equal(t, 250*time.Millisecond, conf.StoreTimeout)
	require.Len(t, conf.Namespaces, 2)
	assert.Equal(t, wiki.NamespaceConfig{ID: 100, Name: "Portal", Aliases: []string{"P"}}, conf.Namespaces[0])
	assert.Equal(t, []string{"T"}, conf.Namespaces[1].Aliases)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("use_rich_editor: false\n"), 0o644))
	t.Setenv("CREATEPAGE_USE_RICH_EDITOR", "true")
	t.Setenv("CREATEPAGE_DBFILE", "/tmp/other.db")

	conf, err := Load(path, false)
	require.NoError(t, err)

	assert.True(t, conf.UseRichEditor)
	assert.Equal(t, "/tmp/other.db", conf.DatabaseFile)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("host: [unterminated\n"), 0o644))
		_, err := Load(path, false)
		assert.Error(t, err)
	})

	t.Run("negative store timeout", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("store_timeout: -1s\n"), 0o644))
		_, err := Load(path, false)
		assert.Error(t, err)
	})
}
