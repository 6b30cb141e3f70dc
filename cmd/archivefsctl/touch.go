package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/archivefs/archivefs"
	"github.com/archivefs/archivefs/cmd"
)

var touchConfiguration struct {
	access string
	at     string
}

var touchCommand = &cobra.Command{
	Use:   "touch <root> <path>",
	Short: "Set one or more access-kind times on an entry",
	Args:  cobra.ExactArgs(2),
	Run:   cmd.Mainify(touchMain),
}

func init() {
	flags := touchCommand.Flags()
	flags.StringVar(&touchConfiguration.access, "access", "write", "comma-separated access kinds to set (read,write,create)")
	flags.StringVar(&touchConfiguration.at, "at", "", "RFC3339 timestamp to set (default: now)")
}

func parseAccessKind(value string) (archivefs.AccessKind, error) {
	switch value {
	case "read":
		return archivefs.AccessKindRead, nil
	case "write":
		return archivefs.AccessKindWrite, nil
	case "create":
		return archivefs.AccessKindCreate, nil
	default:
		return 0, errors.Errorf("unknown access kind %q", value)
	}
}

func touchMain(command *cobra.Command, arguments []string) error {
	fs, err := buildFileSystem(arguments[0])
	if err != nil {
		return err
	}

	var kinds []archivefs.AccessKind
	for _, raw := range strings.Split(touchConfiguration.access, ",") {
		kind, err := parseAccessKind(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		kinds = append(kinds, kind)
	}

	at := time.Now()
	if touchConfiguration.at != "" {
		parsed, err := time.Parse(time.RFC3339, touchConfiguration.at)
		if err != nil {
			return errors.Wrap(err, "unable to parse --at")
		}
		at = parsed
	}

	ok, err := fs.SetTime(arguments[1], kinds, at.UnixMilli())
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("setTime partially failed on %q", arguments[1])
	}

	fmt.Printf("touched %s (%v) at %s\n", arguments[1], kinds, at.Format(time.RFC3339))
	return nil
}
