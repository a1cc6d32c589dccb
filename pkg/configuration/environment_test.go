package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_MissingFiles(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoadEnv_ReadsExistingFiles(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("BOOKLINE_TEST_ENV_LOAD=ok\n"), 0o600))
	chdir(t, tmp)

	_ = os.Unsetenv("BOOKLINE_TEST_ENV_LOAD")
	t.Cleanup(func() { _ = os.Unsetenv("BOOKLINE_TEST_ENV_LOAD") })

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "ok", os.Getenv("BOOKLINE_TEST_ENV_LOAD"))
}

func TestConfiguration_ValidateRLS(t *testing.T) {
	c := &Configuration{RLSEnforce: "ENFORCE", Database: DatabaseOptions{User: "bookline_app"}}
	require.NoError(t, c.validateRLS())
	assert.Equal(t, "enforce", c.RLSEnforce)

	c = &Configuration{RLSEnforce: "enforce", Database: DatabaseOptions{User: "postgres"}}
	require.Error(t, c.validateRLS())

	c = &Configuration{RLSEnforce: "sometimes"}
	require.Error(t, c.validateRLS())
}

func TestConfiguration_Origins(t *testing.T) {
	c := &Configuration{AllowedOrigins: "https://app.bookline.dev, https://admin.bookline.dev,"}
	assert.Equal(t, []string{"https://app.bookline.dev", "https://admin.bookline.dev"}, c.Origins())
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(orig) })
	require.NoError(t, os.Chdir(dir))
}
