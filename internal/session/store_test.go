package session

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elibrary/internal/storage"
)

// pngHeader makes DetectContentType sniff image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(storage.New(dir, nil), nil), dir
}

func TestLoad_AbsentSessionIsAnonymous(t *testing.T) {
	st, _ := newTestStore(t)

	sess := st.Load()
	assert.True(t, sess.Anonymous())
	assert.False(t, st.Authenticated())
}

func TestLoad_MalformedSessionIsAnonymous(t *testing.T) {
	dir := t.TempDir()
	kv := storage.New(dir, nil)
	require.NoError(t, kv.Set(storage.KeyUser, "{broken"))

	st := NewStore(kv, nil)
	assert.True(t, st.Load().Anonymous())
}

func TestSaveSession_RoundTrip(t *testing.T) {
	st, _ := newTestStore(t)

	sess := Session{ID: "7", Name: "Ada", Email: "ada@example.com", MembershipDate: "2021-03-14"}
	require.NoError(t, st.SaveSession(sess, "tok-1"))

	assert.Equal(t, sess, st.Load())
	assert.True(t, st.Authenticated())
	assert.Equal(t, "tok-1", st.Token())
	assert.Equal(t, 2021, st.Load().MemberSince(2023))
}

func TestClear_KeepAvatarLeavesProfileImage(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.SaveSession(Session{ID: "7", Email: "a@b.c"}, "tok"))
	require.NoError(t, st.SetProfileImage(pngHeader))

	require.NoError(t, st.Clear(KeepAvatar))

	assert.True(t, st.Load().Anonymous())
	assert.False(t, st.Authenticated())
	assert.Equal(t, "", st.Token())
	assert.NotEmpty(t, st.ProfileImage(), "default policy keeps the avatar")
}

func TestClear_ClearAllRemovesProfileImage(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.SetProfileImage(pngHeader))

	require.NoError(t, st.Clear(ClearAll))
	assert.Empty(t, st.ProfileImage())
}

func TestSetProfileImage_EncodesDataURL(t *testing.T) {
	st, _ := newTestStore(t)

	require.NoError(t, st.SetProfileImage(pngHeader))

	img := st.ProfileImage()
	assert.True(t, strings.HasPrefix(img, "data:image/png;base64,"), "got %q", img)
}

func TestSetProfileImage_EmptyDataKeepsPreviousAvatar(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.SetProfileImage(pngHeader))
	before := st.ProfileImage()

	err := st.SetProfileImage(nil)
	require.ErrorIs(t, err, ErrEmptyImage)
	assert.Equal(t, before, st.ProfileImage())
}

func TestSubscribe_EachSubscriberNotifiedExactlyOncePerWrite(t *testing.T) {
	st, _ := newTestStore(t)

	var first, second atomic.Int32
	var got atomic.Value
	cancelFirst := st.Subscribe(func(image string) {
		first.Add(1)
		got.Store(image)
	})
	defer cancelFirst()
	cancelSecond := st.Subscribe(func(string) { second.Add(1) })
	defer cancelSecond()

	require.NoError(t, st.SetProfileImage(pngHeader))

	// broadcast is synchronous: by the time SetProfileImage returned,
	// every subscriber has seen the new value exactly once
	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load())
	assert.Equal(t, st.ProfileImage(), got.Load().(string))
}

func TestSubscribe_CancelStopsDelivery(t *testing.T) {
	st, _ := newTestStore(t)

	var calls atomic.Int32
	cancel := st.Subscribe(func(string) { calls.Add(1) })
	require.NoError(t, st.SetProfileImage(pngHeader))
	require.Equal(t, int32(1), calls.Load())

	cancel()
	require.NoError(t, st.SetProfileImage([]byte("GIF89a imagery")))
	assert.Equal(t, int32(1), calls.Load(), "cancelled subscriber must not be invoked")
}

func TestStartWatch_ExternalWritePropagates(t *testing.T) {
	dir := t.TempDir()
	observer := NewStore(storage.New(dir, nil), nil)
	writer := NewStore(storage.New(dir, nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, observer.StartWatch(ctx))

	var seen atomic.Value
	unsubscribe := observer.Subscribe(func(image string) { seen.Store(image) })
	defer unsubscribe()

	require.NoError(t, writer.SetProfileImage(pngHeader))
	want := writer.ProfileImage()

	require.Eventually(t, func() bool {
		v, ok := seen.Load().(string)
		return ok && v == want
	}, 3*time.Second, 10*time.Millisecond, "observer never converged on the external avatar")
}

func TestStartWatch_OwnWriteNotRedelivered(t *testing.T) {
	st, _ := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, st.StartWatch(ctx))

	var calls atomic.Int32
	unsubscribe := st.Subscribe(func(string) { calls.Add(1) })
	defer unsubscribe()

	require.NoError(t, st.SetProfileImage(pngHeader))

	// give the watcher a moment to observe our own write; the value
	// matches what was already broadcast, so it must be suppressed
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTokenExpiry_NonJWTTokenHasNoExpiry(t *testing.T) {
	_, ok := TokenExpiry("opaque-token")
	assert.False(t, ok)

	_, ok = TokenExpiry("")
	assert.False(t, ok)
}
