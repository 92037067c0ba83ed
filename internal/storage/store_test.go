package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AbsentKeysYieldZeroValues(t *testing.T) {
	s := New(t.TempDir(), nil)

	assert.Equal(t, "", s.Get(KeyUser))
	assert.Equal(t, "", s.Get(KeyProfileImage))
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	s := New(t.TempDir(), nil)

	require.NoError(t, s.Set(KeyToken, "abc123"))
	require.NoError(t, s.Set(KeyAuthenticated, "true"))

	assert.Equal(t, "abc123", s.Get(KeyToken))
	assert.Equal(t, "true", s.Get(KeyAuthenticated))
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first := New(dir, nil)
	require.NoError(t, first.Set(KeyUser, `{"id":"1"}`))

	second := New(dir, nil)
	assert.Equal(t, `{"id":"1"}`, second.Get(KeyUser))
}

func TestStore_MalformedFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, StateFile), []byte("{not json"), 0o600))

	s := New(dir, nil)
	assert.Equal(t, "", s.Get(KeyUser))

	// and the store recovers on the next write
	require.NoError(t, s.Set(KeyToken, "t"))
	assert.Equal(t, "t", s.Get(KeyToken))
}

func TestStore_DeleteRemovesOnlyGivenKeys(t *testing.T) {
	s := New(t.TempDir(), nil)
	require.NoError(t, s.Set(KeyUser, "u"))
	require.NoError(t, s.Set(KeyProfileImage, "img"))

	require.NoError(t, s.Delete(KeyUser, KeyAuthenticated))

	assert.Equal(t, "", s.Get(KeyUser))
	assert.Equal(t, "img", s.Get(KeyProfileImage))
}

func TestStore_WatchSeesExternalWrites(t *testing.T) {
	dir := t.TempDir()
	observer := New(dir, nil)
	writer := New(dir, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var signals atomic.Int32
	require.NoError(t, observer.Watch(ctx, func() {
		signals.Add(1)
	}))

	require.NoError(t, writer.Set(KeyProfileImage, "data:image/png;base64,xyz"))

	require.Eventually(t, func() bool {
		return signals.Load() > 0
	}, 3*time.Second, 10*time.Millisecond, "watch never signaled the external write")

	assert.Equal(t, "data:image/png;base64,xyz", observer.Get(KeyProfileImage))
}
