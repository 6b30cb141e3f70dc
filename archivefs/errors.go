package archivefs

import (
	"errors"
	"fmt"
)

// Sentinel errors for ArchiveFileSystem mutators. Use errors.Is to test a
// returned error against these, since they are typically wrapped inside a
// *PathError that carries the offending entry name.
var (
	// ErrNotFound indicates a lookup miss in a mutator.
	ErrNotFound = errors.New("entry not found")
	// ErrAlreadyExists indicates that Mknod was called with CreateExclusive
	// set against an existing entry.
	ErrAlreadyExists = errors.New("entry already exists")
	// ErrNotReplaceable indicates that Mknod targeted an existing entry that
	// is not a FILE.
	ErrNotReplaceable = errors.New("existing entry is not replaceable")
	// ErrTypeMismatch indicates that Mknod's requested type differs from an
	// existing FILE entry's type expectations.
	ErrTypeMismatch = errors.New("requested type does not match existing entry")
	// ErrUnsupportedType indicates that Mknod was asked to create something
	// other than a FILE or DIRECTORY.
	ErrUnsupportedType = errors.New("unsupported entry type")
	// ErrNotADirectory indicates that a path expected to be a directory (a
	// Mknod parent, typically) is not one.
	ErrNotADirectory = errors.New("parent is not a directory")
	// ErrMissingParent indicates that Mknod's parent path doesn't exist and
	// CreateParents was not set.
	ErrMissingParent = errors.New("missing parent directory")
	// ErrInvalidName indicates that the driver rejected an entry name's
	// encoding.
	ErrInvalidName = errors.New("invalid entry name")
	// ErrReadOnly indicates that a mutator was invoked against a read-only
	// filesystem.
	ErrReadOnly = errors.New("filesystem is read-only")
	// ErrInvalidArgument indicates an invalid argument, such as a negative
	// time value passed to SetTime.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrListenerAlreadySet indicates that SetTouchListener was called with
	// a non-nil listener while one was already registered.
	ErrListenerAlreadySet = errors.New("touch listener already set")
	// ErrStaleOperation indicates that a staged Mknod Operation's Commit was
	// invoked after the table's structural generation moved on, i.e. some
	// other mutator ran between Mknod and Commit.
	ErrStaleOperation = errors.New("mknod operation is stale")
)

// PathError records an operation, the entry path it failed for, and the
// underlying reason. It mirrors the shape of os.PathError.
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements error.
func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap supports errors.Is/errors.As against the wrapped sentinel.
func (e *PathError) Unwrap() error {
	return e.Err
}

// DirectoryNotEmptyError indicates that Unlink was invoked against a
// directory whose member set is non-empty. Count is the number of direct
// members.
type DirectoryNotEmptyError struct {
	Path  string
	Count int
}

// Error implements error.
func (e *DirectoryNotEmptyError) Error() string {
	return fmt.Sprintf("directory %q is not empty (%d entries)", e.Path, e.Count)
}

func pathError(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
