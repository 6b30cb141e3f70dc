package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archivefs/archivefs"
	"github.com/archivefs/archivefs/cmd"
)

var mknodConfiguration struct {
	kind            string
	createParents   bool
	createExclusive bool
}

var mknodCommand = &cobra.Command{
	Use:   "mknod <root> <path>",
	Short: "Stage and commit the creation of an entry",
	Args:  cobra.ExactArgs(2),
	Run:   cmd.Mainify(mknodMain),
}

func init() {
	flags := mknodCommand.Flags()
	flags.StringVar(&mknodConfiguration.kind, "type", "file", "entry type to create (\"file\" or \"dir\")")
	flags.BoolVar(&mknodConfiguration.createParents, "create-parents", false, "synthesize missing ancestor directories")
	flags.BoolVar(&mknodConfiguration.createExclusive, "exclusive", false, "fail if the target path already exists")
}

func mknodMain(command *cobra.Command, arguments []string) error {
	fs, err := buildFileSystem(arguments[0])
	if err != nil {
		return err
	}

	kind, err := parseEntryType(mknodConfiguration.kind)
	if err != nil {
		return err
	}

	var options archivefs.CreateOptions
	if mknodConfiguration.createParents {
		options |= archivefs.CreateParents
	}
	if mknodConfiguration.createExclusive {
		options |= archivefs.CreateExclusive
	}

	op, err := fs.Mknod(arguments[1], kind, options, nil)
	if err != nil {
		return err
	}
	if err := op.Commit(); err != nil {
		return err
	}

	fmt.Printf("created %s (%s) as operation %s\n", arguments[1], formatEntryKind(kind), op.ID())
	return nil
}
