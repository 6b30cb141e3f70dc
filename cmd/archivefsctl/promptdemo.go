package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archivefs/archivefs/cmd"
	"github.com/archivefs/archivefs/keyprovider"
	"github.com/archivefs/archivefs/pkg/logging"
)

var promptDemoCommand = &cobra.Command{
	Use:   "prompt-demo",
	Short: "Drive the key provider state machine against the console, logging each transition",
	Args:  cmd.DisallowArguments,
	Run:   cmd.Mainify(promptDemoMain),
}

func promptDemoMain(command *cobra.Command, arguments []string) error {
	logger := logging.RootLogger.Sublogger("prompt-demo").Sublogger(rootConfiguration.correlationID)
	previousDebug := logging.DebugEnabled
	logging.DebugEnabled = true
	defer func() { logging.DebugEnabled = previousDebug }()

	view := &keyprovider.ConsoleView{}
	provider := keyprovider.New[string]("archive://prompt-demo", view, false, keyprovider.WithLogger(logger))

	ctx := context.Background()

	fmt.Println("Requesting a write key (used to encrypt a new resource)...")
	if _, err := provider.RetrieveWriteKey(ctx); err != nil {
		fmt.Println("write key retrieval ended:", err)
	} else {
		fmt.Println("write key obtained.")
	}

	fmt.Println("Requesting a read key (used to decrypt an existing resource)...")
	if _, err := provider.RetrieveReadKey(ctx, false); err != nil {
		fmt.Println("read key retrieval ended:", err)
	} else {
		fmt.Println("read key obtained (same provider, so the write key above is reused).")
	}

	return nil
}
