package signalhandler

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dupefinder/logging"
)

// SetupHandler registers SIGINT/SIGTERM handling. A batch run has no
// resumable state, so an interrupt aborts the process immediately and
// leaves no partial output documents behind (writes are atomic).
func SetupHandler() {
	// Create a channel to receive OS signals
	sigChan := make(chan os.Signal, 1)

	// Register for specific signals
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Handle signals in a separate goroutine
	go func() {
		sig := <-sigChan
		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			fmt.Fprintln(os.Stderr, "\nInterrupted, aborting run")
			logging.LogWarning("run aborted by signal %v", sig)
			logging.CloseLogger()
			os.Exit(1)
		}
	}()
}
