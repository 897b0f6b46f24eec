package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExistsAndPublicURL(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/images/products/")

	assert.False(t, store.Exists("bats/sg-test-bat-main.jpg"))

	require.NoError(t, store.WriteFile("bats/sg-test-bat-main.jpg", []byte("data")))
	assert.True(t, store.Exists("bats/sg-test-bat-main.jpg"))

	data, err := os.ReadFile(filepath.Join(dir, "bats", "sg-test-bat-main.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	// Prefix is normalised without a trailing slash.
	assert.Equal(t, "/images/products/bats/sg-test-bat-main.jpg", store.PublicURL("bats/sg-test-bat-main.jpg"))
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/images/products")

	require.NoError(t, store.EnsureDir("balls"))

	info, err := os.Stat(filepath.Join(dir, "balls"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
