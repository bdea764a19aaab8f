package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goderive "github.com/reoring/goderive"
	"github.com/reoring/goderive/settings"
)

const doc = `
fieldNaming: snake_case
constructorNaming: lowercase
constructorRenames:
  HTTPError: http_error
useDefaults: true
discriminator: type
strictDecoding: true
`

func TestParse_Config(t *testing.T) {
	f, err := settings.Parse([]byte(doc))
	require.NoError(t, err)

	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Equal(t, "first_name", cfg.FieldName("firstName"))
	assert.Equal(t, "dog", cfg.ConstructorName("Dog"))
	assert.Equal(t, "http_error", cfg.ConstructorName("HTTPError"))
	assert.True(t, cfg.UseDefaults())
	assert.True(t, cfg.StrictDecoding())
	d, ok := cfg.Discriminator()
	assert.True(t, ok)
	assert.Equal(t, "type", d)
}

func TestParse_EmptyIsDefault(t *testing.T) {
	f, err := settings.Parse(nil)
	require.NoError(t, err)
	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Equal(t, "firstName", cfg.FieldName("firstName"))
	_, ok := cfg.Discriminator()
	assert.False(t, ok)
}

func TestParse_Rejects(t *testing.T) {
	_, err := settings.Parse([]byte("fieldNames: snake_case\n"))
	assert.Error(t, err, "unknown key")

	f, err := settings.Parse([]byte("fieldNaming: Title Case\n"))
	require.NoError(t, err)
	_, err = f.Config()
	assert.ErrorContains(t, err, "unknown naming")

	f, err = settings.Parse([]byte("discriminator: \"\"\n"))
	require.NoError(t, err)
	_, err = f.Config()
	assert.ErrorIs(t, err, goderive.ErrInvalidConfig)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goderive.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fieldNaming: kebab-case\n"), 0o600))

	f, err := settings.LoadFile(path)
	require.NoError(t, err)
	cfg, err := f.Config()
	require.NoError(t, err)
	assert.Equal(t, "first-name", cfg.FieldName("firstName"))

	_, err = settings.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
