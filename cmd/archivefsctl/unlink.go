package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archivefs/archivefs"
	"github.com/archivefs/archivefs/cmd"
)

var unlinkCommand = &cobra.Command{
	Use:   "unlink <root> <path>",
	Short: "Remove an entry from the archive filesystem",
	Args:  cobra.ExactArgs(2),
	Run:   cmd.Mainify(unlinkMain),
}

func unlinkMain(command *cobra.Command, arguments []string) error {
	fs, err := buildFileSystem(arguments[0])
	if err != nil {
		return err
	}

	if err := fs.Unlink(arguments[1]); err != nil {
		if notEmpty, ok := err.(*archivefs.DirectoryNotEmptyError); ok {
			return fmt.Errorf("directory %q is not empty (%d entries)", notEmpty.Path, notEmpty.Count)
		}
		return err
	}

	fmt.Printf("unlinked %s\n", arguments[1])
	return nil
}
