package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archivefs/archivefs"
	"github.com/archivefs/archivefs/cmd"
)

var lsCommand = &cobra.Command{
	Use:   "ls <root>",
	Short: "List every entry in the archive filesystem assembled from <root>",
	Args:  cobra.ExactArgs(1),
	Run:   cmd.Mainify(lsMain),
}

func lsMain(command *cobra.Command, arguments []string) error {
	fs, err := buildFileSystem(arguments[0])
	if err != nil {
		return err
	}

	for _, entry := range fs.Entries() {
		printed := false
		for _, kind := range []archivefs.EntryType{archivefs.EntryTypeDirectory, archivefs.EntryTypeFile, archivefs.EntryTypeSpecial} {
			variant, ok := entry.Get(kind)
			if !ok {
				continue
			}
			name := entry.Path()
			if name == archivefs.RootPath {
				name = "."
			}
			fmt.Printf("%-8s %10s  %s\n", formatEntryKind(kind), formatSize(variant.Size(archivefs.SizeKindData)), name)
			printed = true
		}
		_ = printed
	}

	fmt.Printf("\n%d entries (%d orphaned)\n", fs.Size(), fs.OrphanCount())
	return nil
}
