//go:build !windows

// Package console detects whether the process runs in a terminal. Outside
// Windows there is always a terminal and os.Interrupt handling suffices.
package console

func IsRunningFromConsole() bool {
	return true
}

// SetupConsoleHandler is a no-op; the returned function is too.
func SetupConsoleHandler(shutdown func()) func() {
	return func() {}
}
