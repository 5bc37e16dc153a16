package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/groceries/pkg/logger"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".groceries.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content *string
		wantAPI string
		wantOK  bool
	}{
		{name: "missing file", content: nil},
		{name: "empty file", content: ptr("")},
		{name: "unparseable file", content: ptr("{{{not yaml")},
		{name: "scalar document", content: ptr("just a string")},
		{name: "api present", content: ptr("api: http://localhost\n"), wantAPI: "http://localhost", wantOK: true},
		{name: "api blank", content: ptr("api: \"  \"\n")},
		{name: "api null", content: ptr("api:\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var path string
			if tt.content == nil {
				path = filepath.Join(t.TempDir(), ".groceries.yml")
			} else {
				path = writeFile(t, *tt.content)
			}

			s := Load(path, logger.Discard())
			require.NotNil(t, s)

			api, ok := s.Get(KeyAPI)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantAPI, api)
			assert.Equal(t, tt.wantOK, s.Has(KeyAPI))
		})
	}
}

func TestLoad_DoesNotCreateFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".groceries.yml")
	_ = Load(path, logger.Discard())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_WriteCreatesOwnerOnlyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".groceries.yml")
	s := Load(path, logger.Discard())
	s.Set(KeyAPI, "http://localhost")
	require.NoError(t, s.Write())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded := Load(path, logger.Discard())
	api, ok := reloaded.Get(KeyAPI)
	require.True(t, ok)
	assert.Equal(t, "http://localhost", api)
}

func TestStore_WriteTightensExistingPermissions(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "api: http://old\n")
	require.NoError(t, os.Chmod(path, 0o644))

	s := Load(path, logger.Discard())
	s.Set(KeyAPI, "http://new")
	require.NoError(t, s.Write())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_WriteOverwritesInsteadOfAppending(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "api: http://a-much-longer-hostname.example.com\nextra: keep\n")

	s := Load(path, logger.Discard())
	s.Set(KeyAPI, "http://x")
	s.Delete("extra")
	require.NoError(t, s.Write())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, map[string]any{"api": "http://x"}, doc)
}

func TestStore_PreservesUnknownKeys(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "timeout: 5s\nlog-level: debug\n")

	s := Load(path, logger.Discard())
	s.Set(KeyAPI, "http://localhost")
	require.NoError(t, s.Write())

	reloaded := Load(path, logger.Discard())
	values := reloaded.Values()
	assert.Equal(t, "5s", values["timeout"])
	assert.Equal(t, "debug", values["log-level"])
	assert.Equal(t, "http://localhost", values["api"])
}

func TestStore_ValuesIsACopy(t *testing.T) {
	t.Parallel()

	s := Load(filepath.Join(t.TempDir(), "x.yml"), logger.Discard())
	s.Set(KeyAPI, "http://localhost")

	values := s.Values()
	values[KeyAPI] = "mutated"

	api, _ := s.Get(KeyAPI)
	assert.Equal(t, "http://localhost", api)
}

func TestStore_WriteFailsForMissingDirectory(t *testing.T) {
	t.Parallel()

	s := Load(filepath.Join(t.TempDir(), "missing", "x.yml"), logger.Discard())
	s.Set(KeyAPI, "http://localhost")

	err := s.Write()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening config file")
}

func ptr(s string) *string { return &s }
