//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals are the signals that stop a run gracefully.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
