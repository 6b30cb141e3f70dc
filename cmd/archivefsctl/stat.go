package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/archivefs/archivefs"
	"github.com/archivefs/archivefs/cmd"
)

var statCommand = &cobra.Command{
	Use:   "stat <root> <path>",
	Short: "Print an entry's times, sizes, and type",
	Args:  cobra.ExactArgs(2),
	Run:   cmd.Mainify(statMain),
}

func statMain(command *cobra.Command, arguments []string) error {
	fs, err := buildFileSystem(arguments[0])
	if err != nil {
		return err
	}

	entry, ok := fs.Entry(arguments[1])
	if !ok {
		return errors.Errorf("no entry at %q", arguments[1])
	}

	for _, kind := range []archivefs.EntryType{archivefs.EntryTypeDirectory, archivefs.EntryTypeFile, archivefs.EntryTypeSpecial} {
		variant, ok := entry.Get(kind)
		if !ok {
			continue
		}
		fmt.Printf("Type: %s\n", formatEntryKind(kind))
		for _, access := range archivefs.StandardAccessKinds {
			fmt.Printf("  %-8s %s\n", access, formatTime(variant.Time(access)))
		}
		for _, size := range []archivefs.SizeKind{archivefs.SizeKindData, archivefs.SizeKindStorage} {
			fmt.Printf("  %-8s %s\n", size, formatSize(variant.Size(size)))
		}
	}

	if entry.IsType(archivefs.EntryTypeDirectory) {
		fmt.Printf("Members: %v\n", entry.Members())
	}
	return nil
}
