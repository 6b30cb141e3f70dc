package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/archivefs/archivefs"
	"github.com/archivefs/archivefs/fsdriver"
	"github.com/archivefs/archivefs/pkg/encoding"
	"github.com/archivefs/archivefs/pkg/logging"
)

// fileConfiguration is the shape of the YAML configuration file loaded from
// --config. Every field has a sensible zero value, so a missing config file
// is equivalent to an empty one.
type fileConfiguration struct {
	// IgnoreGlobs lists doublestar patterns excluded when populating a
	// filesystem from a directory.
	IgnoreGlobs []string `yaml:"ignoreGlobs"`
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".archivefsctl.yml")
}

func loadFileConfiguration(path string) (*fileConfiguration, error) {
	config := &fileConfiguration{}
	if path == "" {
		return config, nil
	}
	if err := encoding.LoadAndUnmarshalYAML(path, config); err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, errors.Wrap(err, "unable to load configuration file")
	}
	return config, nil
}

// buildFileSystem walks root on disk and assembles an archivefs.FileSystem
// over it, applying the ignore globs from the loaded configuration.
func buildFileSystem(root string) (*archivefs.ArchiveFileSystem, error) {
	config, err := loadFileConfiguration(rootConfiguration.config)
	if err != nil {
		return nil, err
	}

	container, err := fsdriver.NewContainer(root)
	if err != nil {
		return nil, errors.Wrap(err, "unable to walk directory")
	}

	logger := logging.RootLogger.Sublogger("archivefsctl").Sublogger(rootConfiguration.correlationID)

	var opts []archivefs.Option
	opts = append(opts, archivefs.WithLogger(logger))
	if len(config.IgnoreGlobs) > 0 {
		opts = append(opts, archivefs.WithIgnoreGlobs(config.IgnoreGlobs...))
	}

	fs, err := archivefs.NewArchiveFileSystemFromContainer(fsdriver.Driver{}, container, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to assemble archive filesystem")
	}
	return fs, nil
}

// formatEntryKind renders an entry type for table output.
func formatEntryKind(kind archivefs.EntryType) string {
	return kind.String()
}

// formatTime renders a millisecond time value, reporting "unknown" for
// archivefs.Unknown.
func formatTime(value int64) string {
	if value == archivefs.Unknown {
		return "unknown"
	}
	return fmt.Sprintf("%d", value)
}

// formatSize renders a size in bytes using human-readable units, reporting
// "unknown" for archivefs.Unknown.
func formatSize(value int64) string {
	if value == archivefs.Unknown {
		return "unknown"
	}
	return humanize.Bytes(uint64(value))
}

func parseEntryType(value string) (archivefs.EntryType, error) {
	switch value {
	case "file":
		return archivefs.EntryTypeFile, nil
	case "dir", "directory":
		return archivefs.EntryTypeDirectory, nil
	default:
		return 0, errors.Errorf("unknown entry type %q (expected \"file\" or \"dir\")", value)
	}
}
