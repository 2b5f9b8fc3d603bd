package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	ApiKey  string `json:"api_key"`
	DataUrl string `json:"data_url"`
	Port    int    `json:"port"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	err := os.WriteFile(name, []byte(`{
		// comments are allowed
		api_key: "abc",
		data_url: "https://example.com",
		port: 3000,
	}`), 0o644)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "abc", config.ApiKey)
	require.Equal(t, 3000, config.Port)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		api_key: "abc",
		port: 3000,
	}`), 0o644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{
		api_key: "local-secret",
	}`), 0o644)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "local-secret", config.ApiKey)
	require.Equal(t, 3000, config.Port)
}

func TestReadConfigEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	t.Setenv("COMMANDER_TEST_API_KEY", "from-env")
	err := os.WriteFile(name, []byte(`{
		api_key: "${COMMANDER_TEST_API_KEY}",
		data_url: "https://example.com/$path",
	}`), 0o644)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "from-env", config.ApiKey)
	// bare dollar signs stay untouched
	require.Equal(t, "https://example.com/$path", config.DataUrl)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, os.IsNotExist(err))
}
