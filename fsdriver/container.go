package fsdriver

import (
	"io/fs"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/archivefs/archivefs"
)

// Container is an archivefs.EntryContainer populated by walking a real OS
// directory tree. The tree's root itself is never recorded as an entry
// (ArchiveFileSystem always synthesizes its own root); every other path
// underneath it is recorded under a canonical name relative to root.
type Container struct {
	entries []archivefs.ArchiveEntry
	byName  map[string]archivefs.ArchiveEntry
}

// NewContainer walks the directory tree rooted at root and returns a
// Container holding one entry per file, directory, and other directory
// entry found beneath it.
func NewContainer(root string) (*Container, error) {
	root = filepath.Clean(root)

	container := &Container{
		byName: make(map[string]archivefs.ArchiveEntry),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		name := archivefs.Canonical(filepath.ToSlash(rel))

		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}

		kind := archivefs.EntryTypeFile
		switch {
		case info.IsDir():
			kind = archivefs.EntryTypeDirectory
		case !info.Mode().IsRegular():
			kind = archivefs.EntryTypeSpecial
		}

		e, entryErr := newEntryFromStat(name, kind, path, info.Size(), info.ModTime())
		if entryErr != nil {
			return entryErr
		}

		container.entries = append(container.entries, e)
		container.byName[name] = e
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to walk directory tree at %s", root)
	}

	return container, nil
}

// Len implements archivefs.EntryContainer.
func (c *Container) Len() int {
	return len(c.entries)
}

// Entries implements archivefs.EntryContainer.
func (c *Container) Entries() []archivefs.ArchiveEntry {
	return c.entries
}

// Entry implements archivefs.EntryContainer.
func (c *Container) Entry(name string) (archivefs.ArchiveEntry, bool) {
	e, ok := c.byName[name]
	return e, ok
}

var _ archivefs.EntryContainer = (*Container)(nil)
