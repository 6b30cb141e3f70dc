// Command archivefsctl exercises the archivefs library end to end against a
// real directory tree: it lists and stats entries, stages and commits
// mknod/unlink/touch operations, and drives the keyprovider state machine
// with the console view.
package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/archivefs/archivefs/cmd"
	"github.com/archivefs/archivefs/pkg/logging"
)

func init() {
	// Load .env defaults, if present. A missing file is not an error; any
	// other failure (malformed file) is worth a warning but not fatal. Skip
	// the warning entirely during shell completion, where stray output on
	// anything but the completion script itself confuses the shell.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) && !cmd.PerformingShellCompletion {
		cmd.Warning("unable to load .env file: " + err.Error())
	}
}

var rootConfiguration struct {
	// config is the path to the YAML configuration file.
	config string
	// debug enables verbose debug logging via pkg/logging.
	debug bool
	// quiet is bound to --quiet; no subcommand reads it, so it does not
	// change any output.
	quiet bool
	// correlationID is generated once per invocation and threaded through
	// every log line, unless overridden by --correlation-id.
	correlationID string
}

var rootCommand = &cobra.Command{
	Use:   "archivefsctl",
	Short: "archivefsctl inspects and mutates archive filesystem overlays",
	Run: func(command *cobra.Command, arguments []string) {
		command.Help()
	},
}

func init() {
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&rootConfiguration.config, "config", defaultConfigPath(), "path to a YAML configuration file")
	flags.BoolVar(&rootConfiguration.debug, "debug", false, "enable verbose debug logging")
	flags.BoolVar(&rootConfiguration.quiet, "quiet", false, "accepted; has no effect on output")
	flags.StringVar(&rootConfiguration.correlationID, "correlation-id", "", "correlation id threaded through log lines (default: generated)")

	cobra.OnInitialize(func() {
		logging.DebugEnabled = rootConfiguration.debug
		if rootConfiguration.correlationID == "" {
			rootConfiguration.correlationID = uuid.NewString()
		}
	})

	rootCommand.AddCommand(
		lsCommand,
		statCommand,
		mknodCommand,
		unlinkCommand,
		touchCommand,
		promptDemoCommand,
	)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		cmd.Fatal(err)
	}
}
