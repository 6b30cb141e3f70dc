package fsdriver

import (
	"github.com/archivefs/archivefs"
)

// Driver is a trivial archivefs.ArchiveDriver for fsdriver-backed
// filesystems. It never rejects a name (the directory walk that produced
// Container's entries already validated them against the real filesystem)
// and every entry it mints lives purely in memory, since fsdriver offers no
// archive codec to persist into.
type Driver struct{}

// NewEntry implements archivefs.ArchiveDriver.
func (Driver) NewEntry(name string, kind archivefs.EntryType, template archivefs.ArchiveEntry, options archivefs.CreateOptions) (archivefs.ArchiveEntry, error) {
	e := newEntry(name, kind)
	if template != nil {
		for _, k := range archivefs.StandardAccessKinds {
			if v := template.Time(k); v != archivefs.Unknown {
				e.SetTime(k, v)
			}
		}
		if v := template.Size(archivefs.SizeKindData); v != archivefs.Unknown {
			e.SetSize(archivefs.SizeKindData, v)
		}
		if v := template.Size(archivefs.SizeKindStorage); v != archivefs.Unknown {
			e.SetSize(archivefs.SizeKindStorage, v)
		}
	}
	return e, nil
}

// AssertEncodable implements archivefs.ArchiveDriver.
func (Driver) AssertEncodable(name string) error {
	return nil
}

var _ archivefs.ArchiveDriver = Driver{}
