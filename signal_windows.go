//go:build windows

package main

import "os"

// shutdownSignals are the signals that stop a run gracefully.
var shutdownSignals = []os.Signal{os.Interrupt}
