package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetAfter(t *testing.T, keys ...string) {
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	})
}

func TestLoad_LayersEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SA_TEST_KEY=base\nSA_TEST_SECRET=s3cret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("SA_TEST_KEY=override\n"), 0o600))
	t.Setenv("APP_ENV", "test")
	unsetAfter(t, "SA_TEST_KEY", "SA_TEST_SECRET")

	s := Load(dir)

	assert.Equal(t, "test", s.AppEnv())
	assert.Len(t, s.Loaded(), 2)
	assert.Equal(t, "override", s.Get("SA_TEST_KEY"))
	assert.Equal(t, "s3cret", s.MustGet("SA_TEST_SECRET"))
}

func TestLoad_MissingFiles(t *testing.T) {
	t.Setenv("APP_ENV", "")

	s := Load(t.TempDir())

	assert.Equal(t, "dev", s.AppEnv())
	assert.Empty(t, s.Loaded())
}

func TestService_TypedGetters(t *testing.T) {
	t.Setenv("SA_TEST_BOOL", "true")
	t.Setenv("SA_TEST_INT", "42")
	t.Setenv("SA_TEST_DUR", "90s")
	t.Setenv("SA_TEST_BAD", "nope")
	s := &Service{}

	assert.True(t, s.GetBool("SA_TEST_BOOL", false))
	assert.False(t, s.GetBool("SA_TEST_BAD", false))
	assert.Equal(t, 42, s.GetInt("SA_TEST_INT", 0))
	assert.Equal(t, 7, s.GetInt("SA_TEST_BAD", 7))
	assert.Equal(t, 90*time.Second, s.GetDuration("SA_TEST_DUR", 0))
	assert.Equal(t, "fallback", s.GetWithDefault("SA_TEST_UNSET", "fallback"))
	assert.Equal(t, "42", s.GetWithDefault("SA_TEST_INT", "fallback"))
}
