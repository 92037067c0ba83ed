package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"elibrary/internal/storage"

	"go.uber.org/zap"
)

// ErrEmptyImage is returned when an avatar upload carries no bytes. The
// previous avatar stays in place.
var ErrEmptyImage = errors.New("empty image data")

// ClearPolicy selects what Clear removes beyond the session record itself.
type ClearPolicy int

const (
	// KeepAvatar clears identity, auth flag and token but leaves the
	// stored avatar behind. A later sign-in on the same machine sees the
	// previous avatar until a new one is uploaded.
	KeepAvatar ClearPolicy = iota
	// ClearAll additionally removes the avatar.
	ClearAll
)

// Store reconciles session and avatar state across every mounted surface in
// this process and across other processes sharing the durable store.
//
// Two notification channels feed subscribers: a synchronous in-process
// broadcast fired immediately after a durable avatar write, and the
// asynchronous storage watch for writes made elsewhere. Both funnel through
// the same refresh path, and duplicate deliveries are suppressed by value.
type Store struct {
	kv     *storage.Store
	logger *zap.Logger

	mu      sync.Mutex
	subs    map[int]func(image string)
	nextSub int
	// last avatar value broadcast in this process; used to drop watch
	// signals for values we already delivered.
	lastImage string
	seeded    bool
}

// NewStore wraps the durable store.
func NewStore(kv *storage.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		kv:     kv,
		logger: logger,
		subs:   make(map[int]func(string)),
	}
}

// Load reads the persisted session. Absent or malformed records yield the
// anonymous session; Load never fails.
func (st *Store) Load() Session {
	raw := st.kv.Get(storage.KeyUser)
	if raw == "" {
		return Session{}
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		st.logger.Warn("persisted session malformed, treating as signed out", zap.Error(err))
		return Session{}
	}
	return sess
}

// SaveSession overwrites the durable session record and marks the store
// authenticated. Used by the authentication flow only; the payload arrives
// validated from the backend.
func (st *Store) SaveSession(sess Session, token string) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := st.kv.Set(storage.KeyUser, string(data)); err != nil {
		return err
	}
	if err := st.kv.Set(storage.KeyAuthenticated, "true"); err != nil {
		return err
	}
	if token != "" {
		return st.SetToken(token)
	}
	return nil
}

// SetToken replaces the stored access token.
func (st *Store) SetToken(token string) error {
	return st.kv.Set(storage.KeyToken, token)
}

// Clear removes the durable session record according to policy.
func (st *Store) Clear(policy ClearPolicy) error {
	keys := []string{storage.KeyUser, storage.KeyAuthenticated, storage.KeyToken}
	if policy == ClearAll {
		keys = append(keys, storage.KeyProfileImage)
	}
	if err := st.kv.Delete(keys...); err != nil {
		return err
	}
	if policy == ClearAll {
		st.broadcast("")
	}
	return nil
}

// Authenticated reports whether a signed-in session is persisted.
func (st *Store) Authenticated() bool {
	return st.kv.Get(storage.KeyAuthenticated) == "true" && !st.Load().Anonymous()
}

// Token returns the stored access token, if any.
func (st *Store) Token() string {
	return st.kv.Get(storage.KeyToken)
}

// ProfileImage returns the stored avatar as a data URL, or "" when none is
// set.
func (st *Store) ProfileImage() string {
	return st.kv.Get(storage.KeyProfileImage)
}

// SetProfileImage encodes the raw image bytes as a self-describing data URL,
// persists it, and notifies every subscriber in this process before
// returning. Other processes observe the write through the storage watch.
func (st *Store) SetProfileImage(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyImage
	}
	encoded := EncodeImage(data)
	if err := st.kv.Set(storage.KeyProfileImage, encoded); err != nil {
		return err
	}
	st.broadcast(encoded)
	return nil
}

// Subscribe registers a handler invoked with the new avatar value on every
// observed change, local or external. The returned cancel func must be
// called on surface teardown.
func (st *Store) Subscribe(fn func(image string)) (cancel func()) {
	st.mu.Lock()
	defer st.mu.Unlock()

	id := st.nextSub
	st.nextSub++
	st.subs[id] = fn

	return func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		delete(st.subs, id)
	}
}

// StartWatch begins observing the durable store for writes made by other
// processes. External avatar changes are folded into the same subscriber
// notifications as local ones. Runs until ctx is cancelled.
func (st *Store) StartWatch(ctx context.Context) error {
	return st.kv.Watch(ctx, st.refresh)
}

// refresh re-reads the avatar from the durable store and notifies
// subscribers when it differs from the last value delivered in this
// process. Signals for our own writes, and duplicate filesystem events for
// a single external write, collapse to nothing here.
func (st *Store) refresh() {
	current := st.kv.Get(storage.KeyProfileImage)

	st.mu.Lock()
	if st.seeded && current == st.lastImage {
		st.mu.Unlock()
		return
	}
	st.mu.Unlock()

	st.broadcast(current)
}

// broadcast records the value and invokes every subscriber exactly once.
// Handlers run synchronously so a caller of SetProfileImage is guaranteed
// every mounted surface has seen the new value by the time it returns.
func (st *Store) broadcast(image string) {
	st.mu.Lock()
	st.lastImage = image
	st.seeded = true
	handlers := make([]func(string), 0, len(st.subs))
	for _, fn := range st.subs {
		handlers = append(handlers, fn)
	}
	st.mu.Unlock()

	for _, fn := range handlers {
		fn(image)
	}
}

// EncodeImage wraps raw image bytes in a base64 data URL with a sniffed
// MIME type.
func EncodeImage(data []byte) string {
	mime := http.DetectContentType(data)
	var sb strings.Builder
	sb.WriteString("data:")
	sb.WriteString(mime)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(data))
	return sb.String()
}
