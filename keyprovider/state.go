// Package keyprovider implements an interactive key-provider state machine
// used to obtain encryption credentials for protected archive resources. It
// coordinates a pluggable View (the prompt UI) and short-lived Controllers
// (capability handles passed to the view for the duration of one prompt)
// across three states: RESET (no key, prompting needed), SET (a key is
// held), and CANCELLED (the user declined to provide one, cached so the
// caller doesn't re-prompt endlessly).
package keyprovider

import (
	"context"
	"errors"
	"sync"

	"github.com/archivefs/archivefs/pkg/identifier"
	"github.com/archivefs/archivefs/pkg/logging"
)

// keyState is the key provider's state, dispatched by a switch rather than
// per-state method overrides (the Go-native rendition of the source's
// state-strategy pattern).
type keyState int

const (
	// stateReset indicates that no key is held and the provider is willing
	// to prompt.
	stateReset keyState = iota
	// stateSet indicates that a key is held.
	stateSet
	// stateCancelled indicates that the user previously declined to provide
	// a key; this is cached so subsequent retrievals don't re-prompt until
	// an explicit reset.
	stateCancelled
)

// String returns a human-readable name for the state, used in log lines.
func (s keyState) String() string {
	switch s {
	case stateReset:
		return "reset"
	case stateSet:
		return "set"
	case stateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// View is the pluggable prompt UI a KeyProvider drives. Both methods may
// return ErrKeyPromptingCancelled (terminal until an explicit reset) or an
// UnknownKeyError (see errors.go) to indicate the key was rejected; a nil
// error with no call to the controller's SetKey is interpreted as
// cancellation.
type View[K any] interface {
	// PromptWriteKey asks the user for a key to use for encrypting a new
	// resource.
	PromptWriteKey(ctx context.Context, controller *WriteController[K]) error
	// PromptReadKey asks the user for a key to use for decrypting an
	// existing resource. invalid is true when this call follows a prior
	// attempt whose key was rejected by the resource itself.
	PromptReadKey(ctx context.Context, controller *ReadController[K], invalid bool) error
}

// KeyProvider is the state machine described above. It is safe for
// concurrent use in the sense that its internal fields are protected by a
// mutex, but it is the caller's responsibility (typically an outer key
// manager) to ensure that only one prompt is in flight at a time -- the
// provider does not itself serialize RetrieveWriteKey/RetrieveReadKey calls
// against each other.
type KeyProvider[K any] struct {
	mu sync.Mutex

	id       string
	resource string
	logger   *logging.Logger

	state                keyState
	key                  *K
	askAlwaysForWriteKey bool
	changeRequested      bool

	view View[K]
}

// New creates a key provider for resource, driven by view. If
// askAlwaysForWriteKey is true, every write-key retrieval while a key is
// already held re-prompts the view (bound to the SET state) rather than
// silently returning the cached key -- useful for a UI that always wants to
// reconfirm a password before it's used to encrypt something.
func New[K any](resource string, view View[K], askAlwaysForWriteKey bool, opts ...Option) *KeyProvider[K] {
	resolved := resolveOptions(opts)

	id, _ := identifier.New(identifier.PrefixProvider)

	return &KeyProvider[K]{
		id:                   id,
		resource:             resource,
		logger:               resolved.logger,
		state:                stateReset,
		askAlwaysForWriteKey: askAlwaysForWriteKey,
		view:                 view,
	}
}

// ID returns the provider's identifier, used to correlate log lines from a
// single provider instance.
func (p *KeyProvider[K]) ID() string {
	return p.id
}

// Resource returns the URI of the resource this provider is prompting
// credentials for.
func (p *KeyProvider[K]) Resource() string {
	return p.resource
}

func (p *KeyProvider[K]) debugf(format string, args ...interface{}) {
	p.logger.Debugf(format, args...)
}

func (p *KeyProvider[K]) currentState() keyState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// transitionToCancelledIfStillReset moves the provider from RESET to
// CANCELLED and reports whether it did so. It is a no-op (returning false)
// if something else already moved the state (e.g. a concurrent SetKey)
// while the prompt was in flight.
func (p *KeyProvider[K]) transitionToCancelledIfStillReset() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == stateReset {
		p.state = stateCancelled
		return true
	}
	return false
}

// applySetKey implements the "any + setKey(K)" transition: storing key sets
// state to SET; storing nil sets state to CANCELLED. It is invoked both by
// the public SetKey method and by controllers on the view's behalf.
func (p *KeyProvider[K]) applySetKey(key *K) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if key != nil {
		stored := *key
		p.key = &stored
		p.state = stateSet
	} else {
		p.key = nil
		p.state = stateCancelled
	}
}

// SetKey stores key directly, without going through a prompt. Passing nil
// is equivalent to a cancelled prompt.
func (p *KeyProvider[K]) SetKey(key *K) {
	p.applySetKey(key)
	p.debugf("provider %s: key set directly, state -> %s", p.id, p.currentState())
}

// GetKey returns the currently held key, if any.
func (p *KeyProvider[K]) GetKey() (K, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		var zero K
		return zero, false
	}
	return *p.key, true
}

func (p *KeyProvider[K]) currentKeyOrCancelled() (K, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		var zero K
		return zero, ErrKeyPromptingCancelled
	}
	return *p.key, nil
}

// setChangeRequested implements the change-requested hint a ReadController
// may set during a read prompt, consumed the next time a write key is
// retrieved.
func (p *KeyProvider[K]) setChangeRequested(value bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changeRequested = value
}

// ResetCancelledKey clears a cached cancellation, returning the provider to
// RESET so the next retrieval re-prompts. It is a no-op unless the provider
// is currently CANCELLED.
func (p *KeyProvider[K]) ResetCancelledKey() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == stateCancelled {
		p.key = nil
		p.changeRequested = false
		p.state = stateReset
	}
}

// ResetUnconditionally clears any held key and cached cancellation
// regardless of current state, leaving the provider indistinguishable from
// one freshly constructed via New.
func (p *KeyProvider[K]) ResetUnconditionally() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.key = nil
	p.changeRequested = false
	p.state = stateReset
}

// RetrieveWriteKey retrieves a key suitable for encrypting a new resource,
// prompting the view if necessary.
func (p *KeyProvider[K]) RetrieveWriteKey(ctx context.Context) (K, error) {
	switch p.currentState() {
	case stateReset:
		return p.retrieveWriteKeyFromReset(ctx)
	case stateSet:
		return p.retrieveWriteKeyFromSet(ctx)
	case stateCancelled:
		return p.retrieveWriteKeyFromCancelled(ctx)
	default:
		var zero K
		return zero, ErrKeyPromptingCancelled
	}
}

func (p *KeyProvider[K]) retrieveWriteKeyFromReset(ctx context.Context) (K, error) {
	controller := newWriteController(p, stateReset)
	_ = p.view.PromptWriteKey(ctx, controller)
	controller.close()

	if p.transitionToCancelledIfStillReset() {
		p.debugf("provider %s: write prompt returned without a key, state -> cancelled", p.id)
	}

	// Tail-delegate to whichever state the prompt left us in: SET returns
	// the key, CANCELLED raises ErrKeyPromptingCancelled.
	return p.RetrieveWriteKey(ctx)
}

func (p *KeyProvider[K]) retrieveWriteKeyFromSet(ctx context.Context) (K, error) {
	p.mu.Lock()
	changeRequested := p.changeRequested
	if changeRequested {
		p.changeRequested = false
	}
	p.mu.Unlock()

	if changeRequested {
		return p.performWriteKeyChange(ctx)
	}

	if p.askAlwaysForWriteKey {
		controller := newWriteController(p, stateSet)
		_ = p.view.PromptWriteKey(ctx, controller)
		controller.close()
		// Per spec: do not change state on return here -- the view updates
		// the key (if at all) via controller.SetKey, which already moves
		// the state as a side effect of applySetKey.
	}

	return p.currentKeyOrCancelled()
}

// performWriteKeyChange implements "SET + retrieveWriteKey with
// changeRequested": it re-prompts exactly as RESET would, but never forces
// the provider to CANCELLED if the view declines -- an abandoned change
// leaves the previously held key in place.
func (p *KeyProvider[K]) performWriteKeyChange(ctx context.Context) (K, error) {
	controller := newWriteController(p, stateReset)
	_ = p.view.PromptWriteKey(ctx, controller)
	controller.close()

	p.debugf("provider %s: write key change attempt complete, state -> %s", p.id, p.currentState())

	return p.currentKeyOrCancelled()
}

func (p *KeyProvider[K]) retrieveWriteKeyFromCancelled(ctx context.Context) (K, error) {
	var zero K
	return zero, ErrKeyPromptingCancelled
}

// RetrieveReadKey retrieves a key suitable for decrypting an existing
// resource. invalid should be true when a previous attempt's key was
// rejected by the resource itself, so the view can give feedback.
func (p *KeyProvider[K]) RetrieveReadKey(ctx context.Context, invalid bool) (K, error) {
	switch p.currentState() {
	case stateReset:
		return p.retrieveReadKeyFromReset(ctx, invalid)
	case stateSet:
		return p.retrieveReadKeyFromSet(ctx, invalid)
	case stateCancelled:
		return p.retrieveReadKeyFromCancelled(ctx, invalid)
	default:
		var zero K
		return zero, ErrKeyPromptingCancelled
	}
}

func (p *KeyProvider[K]) retrieveReadKeyFromReset(ctx context.Context, invalid bool) (K, error) {
	for {
		controller := newReadController(p, stateReset)
		err := p.view.PromptReadKey(ctx, controller, invalid)
		controller.close()

		if _, ok := asCacheableUnknownKey(err); ok || errors.Is(err, ErrKeyPromptingCancelled) {
			p.mu.Lock()
			p.state = stateCancelled
			p.mu.Unlock()
			p.debugf("provider %s: read prompt was cancelled or reported a cacheable unknown key, state -> cancelled", p.id)
			break
		}

		if err == nil && p.transitionToCancelledIfStillReset() {
			p.debugf("provider %s: read prompt returned without a key, state -> cancelled", p.id)
			break
		}

		if p.currentState() != stateReset {
			break
		}
	}

	return p.RetrieveReadKey(ctx, false)
}

func (p *KeyProvider[K]) retrieveReadKeyFromSet(ctx context.Context, invalid bool) (K, error) {
	if invalid {
		p.mu.Lock()
		p.state = stateReset
		p.mu.Unlock()
		return p.RetrieveReadKey(ctx, invalid)
	}
	return p.currentKeyOrCancelled()
}

func (p *KeyProvider[K]) retrieveReadKeyFromCancelled(ctx context.Context, invalid bool) (K, error) {
	var zero K
	return zero, ErrKeyPromptingCancelled
}
