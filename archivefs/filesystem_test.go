package archivefs

import "testing"

func withFixedClock(t *testing.T, millis int64) {
	t.Helper()
	previous := nowMillis
	nowMillis = func() int64 { return millis }
	t.Cleanup(func() { nowMillis = previous })
}

func TestNewArchiveFileSystemEmpty(t *testing.T) {
	withFixedClock(t, 1000)

	fs, err := NewArchiveFileSystem(&testDriver{})
	if err != nil {
		t.Fatalf("NewArchiveFileSystem: %v", err)
	}
	if got := fs.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
	root, ok := fs.Entry(RootPath)
	if !ok {
		t.Fatal("root entry not found")
	}
	if !root.IsType(EntryTypeDirectory) {
		t.Error("root is not a directory")
	}
	entry, _ := root.Get(EntryTypeDirectory)
	if entry.Time(AccessKindWrite) != 1000 {
		t.Errorf("root write time = %d, want 1000", entry.Time(AccessKindWrite))
	}
}

func TestNewArchiveFileSystemFromContainerSynthesizesGhostDirectories(t *testing.T) {
	container := &testContainer{entries: []ArchiveEntry{
		newTestEntry("a/b/c.txt", EntryTypeFile),
	}}

	fs, err := NewArchiveFileSystemFromContainer(&testDriver{}, container)
	if err != nil {
		t.Fatalf("NewArchiveFileSystemFromContainer: %v", err)
	}

	for _, path := range []string{"a", "a/b"} {
		wrapper, ok := fs.Entry(path)
		if !ok {
			t.Fatalf("expected ghost directory %q to exist", path)
		}
		if !wrapper.IsType(EntryTypeDirectory) {
			t.Fatalf("%q is not a directory", path)
		}
		entry, _ := wrapper.Get(EntryTypeDirectory)
		for _, kind := range StandardAccessKinds {
			if got := entry.Time(kind); got != Unknown {
				t.Errorf("ghost %q time[%s] = %d, want Unknown", path, kind, got)
			}
		}
	}

	a, _ := fs.Entry("a")
	if want := []string{"b"}; !stringSliceEqual(a.Members(), want) {
		t.Errorf("a.Members() = %v, want %v", a.Members(), want)
	}
	b, _ := fs.Entry("a/b")
	if want := []string{"c.txt"}; !stringSliceEqual(b.Members(), want) {
		t.Errorf("a/b.Members() = %v, want %v", b.Members(), want)
	}
	if fs.OrphanCount() != 0 {
		t.Errorf("OrphanCount() = %d, want 0", fs.OrphanCount())
	}
}

func TestNewArchiveFileSystemFromContainerCountsOrphans(t *testing.T) {
	container := &testContainer{entries: []ArchiveEntry{
		newTestEntry("/etc/passwd", EntryTypeFile),
		newTestEntry("../escape.txt", EntryTypeFile),
		newTestEntry("ok.txt", EntryTypeFile),
	}}

	fs, err := NewArchiveFileSystemFromContainer(&testDriver{}, container)
	if err != nil {
		t.Fatalf("NewArchiveFileSystemFromContainer: %v", err)
	}
	if got := fs.OrphanCount(); got != 2 {
		t.Errorf("OrphanCount() = %d, want 2", got)
	}
	if _, ok := fs.Entry("ok.txt"); !ok {
		t.Error("expected well-formed entry to be reachable")
	}
}

func TestNewArchiveFileSystemFromContainerIgnoreGlobs(t *testing.T) {
	container := &testContainer{entries: []ArchiveEntry{
		newTestEntry("keep.txt", EntryTypeFile),
		newTestEntry("skip/me.txt", EntryTypeFile),
	}}

	fs, err := NewArchiveFileSystemFromContainer(&testDriver{}, container, WithIgnoreGlobs("skip/**"))
	if err != nil {
		t.Fatalf("NewArchiveFileSystemFromContainer: %v", err)
	}
	if _, ok := fs.Entry("skip/me.txt"); ok {
		t.Error("expected skip/me.txt to be excluded by ignore glob")
	}
	if _, ok := fs.Entry("keep.txt"); !ok {
		t.Error("expected keep.txt to survive")
	}
}

func TestUnlinkRootIsNoop(t *testing.T) {
	fs, _ := NewArchiveFileSystem(&testDriver{})
	if err := fs.Unlink(RootPath); err != nil {
		t.Fatalf("Unlink(root) = %v, want nil", err)
	}
	if _, ok := fs.Entry(RootPath); !ok {
		t.Error("root was removed by Unlink")
	}
}

func TestUnlinkNonEmptyDirectoryFails(t *testing.T) {
	container := &testContainer{entries: []ArchiveEntry{
		newTestEntry("dir/file.txt", EntryTypeFile),
	}}
	fs, _ := NewArchiveFileSystemFromContainer(&testDriver{}, container)

	err := fs.Unlink("dir")
	notEmpty, ok := err.(*DirectoryNotEmptyError)
	if !ok {
		t.Fatalf("Unlink(dir) = %v, want *DirectoryNotEmptyError", err)
	}
	if notEmpty.Count != 1 {
		t.Errorf("Count = %d, want 1", notEmpty.Count)
	}
}

func TestUnlinkRemovesEntryAndMembership(t *testing.T) {
	withFixedClock(t, 5000)
	container := &testContainer{entries: []ArchiveEntry{
		newTestEntry("file.txt", EntryTypeFile),
	}}
	fs, _ := NewArchiveFileSystemFromContainer(&testDriver{}, container)

	if err := fs.Unlink("file.txt"); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if _, ok := fs.Entry("file.txt"); ok {
		t.Error("file.txt still present after Unlink")
	}
	root, _ := fs.Entry(RootPath)
	if len(root.Members()) != 0 {
		t.Errorf("root.Members() = %v, want empty", root.Members())
	}
}

func TestUnlinkUnknownPathFails(t *testing.T) {
	fs, _ := NewArchiveFileSystem(&testDriver{})
	err := fs.Unlink("missing")
	if err == nil {
		t.Fatal("Unlink(missing) = nil, want error")
	}
}

func TestSetTimeRejectsNegativeValue(t *testing.T) {
	fs, _ := NewArchiveFileSystem(&testDriver{})
	if _, err := fs.SetTime(RootPath, []AccessKind{AccessKindWrite}, -1); err == nil {
		t.Fatal("SetTime with negative value = nil error, want error")
	}
}

func TestSetTimeAppliesToAllVariants(t *testing.T) {
	withFixedClock(t, 42)
	fs, _ := NewArchiveFileSystem(&testDriver{})

	op, err := fs.Mknod("thing", EntryTypeFile, 0, nil)
	if err != nil {
		t.Fatalf("Mknod: %v", err)
	}
	if err := op.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	dir := newTestEntry("thing", EntryTypeDirectory)
	fs.table.Add("thing", EntryTypeDirectory, dir)

	ok, err := fs.SetTime("thing", []AccessKind{AccessKindRead, AccessKindCreate}, 99)
	if err != nil {
		t.Fatalf("SetTime: %v", err)
	}
	if !ok {
		t.Error("SetTime reported failure")
	}
	entry, _ := fs.Entry("thing")
	file, _ := entry.Get(EntryTypeFile)
	if file.Time(AccessKindRead) != 99 || file.Time(AccessKindCreate) != 99 {
		t.Errorf("times not applied: read=%d create=%d", file.Time(AccessKindRead), file.Time(AccessKindCreate))
	}
	if dir.Time(AccessKindRead) != 99 || dir.Time(AccessKindCreate) != 99 {
		t.Errorf("times not applied to directory variant: read=%d create=%d", dir.Time(AccessKindRead), dir.Time(AccessKindCreate))
	}
}

func TestSetTimesSkipsNegativeValuesButStillTouches(t *testing.T) {
	container := &testContainer{entries: []ArchiveEntry{
		newTestEntry("thing", EntryTypeFile),
	}}
	fs, _ := NewArchiveFileSystemFromContainer(&testDriver{}, container)
	touches := 0
	if err := fs.SetTouchListener(TouchListenerFunc(func() error {
		touches++
		return nil
	})); err != nil {
		t.Fatalf("SetTouchListener: %v", err)
	}

	ok, err := fs.SetTimes("thing", map[AccessKind]int64{
		AccessKindRead:  10,
		AccessKindWrite: -1,
	})
	if err != nil {
		t.Fatalf("SetTimes: %v", err)
	}
	if ok {
		t.Error("SetTimes reported success despite a negative pair")
	}
	entry, _ := fs.Entry("thing")
	file, _ := entry.Get(EntryTypeFile)
	if file.Time(AccessKindRead) != 10 {
		t.Errorf("read time = %d, want 10", file.Time(AccessKindRead))
	}
	if touches != 1 {
		t.Errorf("PreTouch calls = %d, want 1", touches)
	}
}

func TestSetTouchListenerVetoPreventsMutation(t *testing.T) {
	container := &testContainer{entries: []ArchiveEntry{
		newTestEntry("file.txt", EntryTypeFile),
	}}
	fs, _ := NewArchiveFileSystemFromContainer(&testDriver{}, container)

	vetoErr := ErrReadOnly
	listener := TouchListenerFunc(func() error { return vetoErr })
	if err := fs.SetTouchListener(listener); err != nil {
		t.Fatalf("SetTouchListener: %v", err)
	}

	if err := fs.Unlink("file.txt"); err == nil {
		t.Fatal("Unlink succeeded despite vetoing touch listener")
	}
	if _, ok := fs.Entry("file.txt"); !ok {
		t.Error("file.txt was removed despite vetoed touch")
	}
}

func TestSetTouchListenerRejectsDoubleRegistration(t *testing.T) {
	fs, _ := NewArchiveFileSystem(&testDriver{})
	listener := TouchListenerFunc(func() error { return nil })
	if err := fs.SetTouchListener(listener); err != nil {
		t.Fatalf("first SetTouchListener: %v", err)
	}
	if err := fs.SetTouchListener(listener); err == nil {
		t.Fatal("second SetTouchListener = nil, want ErrListenerAlreadySet")
	}
	if err := fs.SetTouchListener(nil); err != nil {
		t.Fatalf("clearing listener: %v", err)
	}
	if err := fs.SetTouchListener(listener); err != nil {
		t.Fatalf("re-registering after clear: %v", err)
	}
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
