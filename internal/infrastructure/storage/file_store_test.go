package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	in := []record{{ID: "1", Name: "first"}, {ID: "2", Name: "second"}}
	require.NoError(t, store.Write("test-storage", in))

	var out []record
	require.NoError(t, store.Read("test-storage", &out))
	assert.Equal(t, in, out)
}

func TestFileStoreMissingNamespace(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var out []record
	err = store.Read("never-written", &out)
	assert.ErrorIs(t, err, ErrNamespaceNotFound)
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write("test-storage", []record{{ID: "1"}}))
	require.NoError(t, store.Write("test-storage", []record{{ID: "2"}, {ID: "3"}}))

	var out []record
	require.NoError(t, store.Read("test-storage", &out))
	require.Len(t, out, 2)
	assert.Equal(t, "2", out[0].ID)
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write("test-storage", []record{{ID: "1"}}))
	require.NoError(t, store.Delete("test-storage"))

	var out []record
	assert.ErrorIs(t, store.Read("test-storage", &out), ErrNamespaceNotFound)

	// Deleting again is not an error
	assert.NoError(t, store.Delete("test-storage"))
}
