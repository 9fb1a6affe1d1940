package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/weave-escrow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBase() (store.CacheableKVStore, func()) {
	commit := MockCommitStore()
	return commit.Adapter(), commit.Close
}

func TestIavlSuite(t *testing.T) {
	suite := store.NewTestSuite(makeBase)
	t.Run("get set", suite.GetSet)
	t.Run("cache conflicts", suite.CacheConflicts)
	t.Run("fuzz iterator", suite.FuzzIterator)
	t.Run("iterator with conflicts", suite.IteratorWithConflicts)
}

func TestCommitAndReload(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-commit-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	commit := NewCommitStore(dir, "state")
	require.NoError(t, commit.LoadLatestVersion())

	id, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(0), id.Version)

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("escrow"), []byte("open")))
	require.NoError(t, cache.Write())

	first, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Version)
	assert.NotEmpty(t, first.Hash)

	// a discarded cache changes nothing
	cache = commit.CacheWrap()
	require.NoError(t, cache.Delete([]byte("escrow")))
	cache.Discard()
	val, err := commit.Get([]byte("escrow"))
	require.NoError(t, err)
	assert.Equal(t, []byte("open"), val)

	cache = commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("vault"), []byte("funded")))
	require.NoError(t, cache.Write())
	second, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version)
	assert.NotEqual(t, first.Hash, second.Hash)
	commit.Close()

	reopened := NewCommitStore(dir, "state")
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())
	id, err = reopened.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, second, id)

	val, err = reopened.Get([]byte("escrow"))
	require.NoError(t, err)
	assert.Equal(t, []byte("open"), val)
}
