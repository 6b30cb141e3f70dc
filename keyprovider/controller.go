package keyprovider

import (
	"sync"

	"github.com/archivefs/archivefs/pkg/identifier"
)

// controllerCore is the shared guts of WriteController and ReadController:
// a capability handle, scoped to the lifetime of a single View prompt call,
// that captures the provider's state at construction and forwards every
// operation to the provider it was built from. Once closed, every operation
// raises IllegalStateError -- mirroring the source's inner-class controller
// whose close() flips a sentinel that every subsequent method checks.
type controllerCore[K any] struct {
	mu       sync.Mutex
	id       string
	provider *KeyProvider[K]
	captured keyState
	closed   bool
}

func newControllerCore[K any](provider *KeyProvider[K], captured keyState) controllerCore[K] {
	id, _ := identifier.New(identifier.PrefixController)
	return controllerCore[K]{
		id:       id,
		provider: provider,
		captured: captured,
	}
}

func (c *controllerCore[K]) checkOpen(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return &IllegalStateError{ControllerID: c.id, Op: op}
	}
	return nil
}

func (c *controllerCore[K]) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Resource returns the URI of the resource being prompted for.
func (c *controllerCore[K]) Resource() string {
	return c.provider.Resource()
}

// WriteController is handed to View.PromptWriteKey for the duration of
// exactly one call. It exposes Key (the write path is allowed to inspect
// the value it's about to set) and SetKey, but not SetChangeRequested: the
// write path has no use for that hint, since it's the thing that consumes
// a change request, not the thing that raises one.
type WriteController[K any] struct {
	controllerCore[K]
}

func newWriteController[K any](provider *KeyProvider[K], captured keyState) *WriteController[K] {
	return &WriteController[K]{controllerCore: newControllerCore(provider, captured)}
}

// Key returns the key currently held by the provider, if any.
func (c *WriteController[K]) Key() (K, bool, error) {
	if err := c.checkOpen("key"); err != nil {
		var zero K
		return zero, false, err
	}
	key, ok := c.provider.GetKey()
	return key, ok, nil
}

// SetKey stores key on the provider. Passing nil is equivalent to
// cancelling the prompt.
func (c *WriteController[K]) SetKey(key *K) error {
	if err := c.checkOpen("setKey"); err != nil {
		return err
	}
	c.provider.applySetKey(key)
	return nil
}

// ReadController is handed to View.PromptReadKey for the duration of
// exactly one call. It exposes SetKey and SetChangeRequested, but not Key:
// the reader is never shown the previous key, since the whole point of a
// read prompt is that the provider doesn't know whether the caller's
// resource will accept it.
type ReadController[K any] struct {
	controllerCore[K]
}

func newReadController[K any](provider *KeyProvider[K], captured keyState) *ReadController[K] {
	return &ReadController[K]{controllerCore: newControllerCore(provider, captured)}
}

// SetKey stores key on the provider. Passing nil is equivalent to
// cancelling the prompt.
func (c *ReadController[K]) SetKey(key *K) error {
	if err := c.checkOpen("setKey"); err != nil {
		return err
	}
	c.provider.applySetKey(key)
	return nil
}

// SetChangeRequested records that the user asked, mid read-prompt, to
// change the resource's key. The next RetrieveWriteKey call will consume
// and clear this flag by re-prompting for a write key even though one is
// already held.
func (c *ReadController[K]) SetChangeRequested(value bool) error {
	if err := c.checkOpen("setChangeRequested"); err != nil {
		return err
	}
	c.provider.setChangeRequested(value)
	return nil
}
