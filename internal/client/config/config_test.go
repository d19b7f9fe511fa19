package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpshare/internal/checksum"
)

func TestLoad_DefaultsWithBoundary(t *testing.T) {
	t.Setenv("UPLOAD_BOUNDARY", "deadbeef")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", c.Host)
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, ".", c.BaseDir)
	assert.Equal(t, "uploads", c.OutputDir)
	assert.Equal(t, "deadbeef", c.Boundary)
	assert.Equal(t, "/upload", c.TargetPath)
	assert.Equal(t, checksum.MD5, c.Algorithm)
	assert.Equal(t, 10*time.Second, c.DialTimeout)
	assert.Empty(t, c.AuthToken)
}

func TestLoad_BoundaryRequired(t *testing.T) {
	t.Setenv("UPLOAD_BOUNDARY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("UPLOAD_BOUNDARY", "b0")
	t.Setenv("UPLOAD_HOST", "10.0.0.5")
	t.Setenv("UPLOAD_PORT", "9999")
	t.Setenv("UPLOAD_CHECKSUM", "sha256")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5:9999", c.Addr())
	assert.Equal(t, checksum.SHA256, c.Algorithm)
}

func TestLoad_BadAlgorithm(t *testing.T) {
	t.Setenv("UPLOAD_BOUNDARY", "b0")
	t.Setenv("UPLOAD_CHECKSUM", "crc32")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DialTimeoutFlagIsADuration(t *testing.T) {
	t.Setenv("UPLOAD_BOUNDARY", "b0")
	t.Setenv("UPLOAD_DIAL_TIMEOUT", "10s")

	orig := os.Args
	os.Args = []string{"uploadcheck", "-t", "3s", "file.txt"}
	t.Cleanup(func() { os.Args = orig })

	c, err := Load()
	require.NoError(t, err)

	// the flag uses the same duration syntax as the env variable and wins
	assert.Equal(t, 3*time.Second, c.DialTimeout)
}

func TestLoad_BadPort(t *testing.T) {
	t.Setenv("UPLOAD_BOUNDARY", "b0")
	t.Setenv("UPLOAD_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}
