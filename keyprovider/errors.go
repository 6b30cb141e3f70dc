package keyprovider

import (
	"errors"
	"fmt"
)

// ErrKeyPromptingCancelled is returned by RetrieveWriteKey/RetrieveReadKey
// when the provider is (or has just become) CANCELLED. It is terminal until
// ResetCancelledKey or ResetUnconditionally is called.
var ErrKeyPromptingCancelled = errors.New("key prompting cancelled")

// UnknownKeyError indicates that a View rejected a prompt because the
// resource's key could not be determined, without necessarily meaning the
// user cancelled. Wrap it in a CacheableUnknownKeyError to make
// RetrieveReadKey treat it as cause to transition to CANCELLED.
type UnknownKeyError struct {
	Reason string
}

// Error implements error.
func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key: %s", e.Reason)
}

// CacheableUnknownKeyError wraps an UnknownKeyError to additionally signal
// that the provider should cache this as a cancellation: subsequent
// RetrieveReadKey calls will raise ErrKeyPromptingCancelled without
// re-prompting until an explicit reset.
type CacheableUnknownKeyError struct {
	*UnknownKeyError
}

// Error implements error.
func (e *CacheableUnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key (cacheable): %s", e.UnknownKeyError.Reason)
}

// Unwrap supports errors.As/errors.Is against the wrapped UnknownKeyError.
func (e *CacheableUnknownKeyError) Unwrap() error {
	return e.UnknownKeyError
}

// asCacheableUnknownKey reports whether err is (or wraps) a
// *CacheableUnknownKeyError.
func asCacheableUnknownKey(err error) (*CacheableUnknownKeyError, bool) {
	var cacheable *CacheableUnknownKeyError
	if errors.As(err, &cacheable) {
		return cacheable, true
	}
	return nil, false
}

// IllegalStateError indicates that a Controller method was invoked after
// the controller was closed (i.e. after the prompt call that received it
// has already returned).
type IllegalStateError struct {
	ControllerID string
	Op           string
}

// Error implements error.
func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("controller %s: %s called on closed controller", e.ControllerID, e.Op)
}
