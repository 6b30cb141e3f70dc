package keyprovider

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mutagen-io/gopass"
)

// ConsoleView is a reference View[string] implementation suitable for a
// command-line tool: it reads passwords from the controlling terminal using
// masked input, confirming a new write key by asking for it twice.
//
// ConsoleView refuses to prompt at all when stdin isn't a terminal,
// returning a cacheable unknown-key error immediately rather than blocking
// forever on a non-interactive run (a batch job piping /dev/null into
// stdin, for instance).
type ConsoleView struct {
	// MaxAttempts bounds how many times PromptWriteKey will ask for a
	// mismatched confirmation before giving up. Zero means use the default
	// of 3.
	MaxAttempts int
}

// errNotATerminalReason is the reason reported (wrapped as cacheable) when
// stdin isn't connected to a terminal.
var errNotATerminalReason = "stdin is not a terminal"

func (v *ConsoleView) maxAttempts() int {
	if v.MaxAttempts > 0 {
		return v.MaxAttempts
	}
	return 3
}

// PromptWriteKey implements View.
func (v *ConsoleView) PromptWriteKey(ctx context.Context, controller *WriteController[string]) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return &CacheableUnknownKeyError{&UnknownKeyError{Reason: errNotATerminalReason}}
	}

	for attempt := 0; attempt < v.maxAttempts(); attempt++ {
		fmt.Printf("Enter password for %s: ", controller.Resource())
		entered, err := gopass.GetPasswdMasked()
		if err != nil {
			return fmt.Errorf("unable to read password: %w", err)
		}

		fmt.Print("Confirm password: ")
		confirmed, err := gopass.GetPasswdMasked()
		if err != nil {
			return fmt.Errorf("unable to read password confirmation: %w", err)
		}

		if string(entered) == string(confirmed) {
			key := string(entered)
			return controller.SetKey(&key)
		}

		fmt.Println("Passwords did not match; please try again.")
	}

	// Returning without calling SetKey is interpreted as cancellation.
	return nil
}

// PromptReadKey implements View.
func (v *ConsoleView) PromptReadKey(ctx context.Context, controller *ReadController[string], invalid bool) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return &CacheableUnknownKeyError{&UnknownKeyError{Reason: errNotATerminalReason}}
	}

	if invalid {
		fmt.Println("Previous password was rejected; please try again.")
	}

	fmt.Printf("Enter password for %s: ", controller.Resource())
	entered, err := gopass.GetPasswdMasked()
	if err != nil {
		return fmt.Errorf("unable to read password: %w", err)
	}

	key := string(entered)
	return controller.SetKey(&key)
}
