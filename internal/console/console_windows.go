//go:build windows

// Package console detects whether the process runs in a terminal and
// installs a Ctrl+C handler that keeps working while SDL3 holds a locked
// OS thread.
package console

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procGetConsoleWindow      = kernel32.NewProc("GetConsoleWindow")
	procAllocConsole          = kernel32.NewProc("AllocConsole")
	procFreeConsole           = kernel32.NewProc("FreeConsole")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

const (
	ctrlCEvent     = 0
	ctrlBreakEvent = 1
)

// IsRunningFromConsole reports whether the process runs in a terminal.
//
// A console-mode build started from Explorer frees its auto-created console
// window and reports false. A GUI-mode build started from a terminal gets
// its own console with redirected std streams.
func IsRunningFromConsole() bool {
	fromExplorer := launchedFromExplorer()
	if hasConsoleWindow() {
		if fromExplorer {
			procFreeConsole.Call()
			return false
		}
		return true
	}
	if fromExplorer {
		return false
	}
	// AllocConsole rather than AttachConsole so the parent shell keeps its input.
	procAllocConsole.Call()
	redirectStdStreams()
	return true
}

func hasConsoleWindow() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	return hwnd != 0
}

func redirectStdStreams() {
	stdout, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil || stdout == 0 {
		return
	}
	stderr, err := windows.GetStdHandle(windows.STD_ERROR_HANDLE)
	if err != nil || stderr == 0 {
		return
	}
	os.Stdout = os.NewFile(uintptr(stdout), "/dev/stdout")
	os.Stderr = os.NewFile(uintptr(stderr), "/dev/stderr")
	if stdin, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE); err == nil && stdin != 0 {
		os.Stdin = os.NewFile(uintptr(stdin), "/dev/stdin")
	}
}

func launchedFromExplorer() bool {
	name, ok := parentImage()
	return ok && strings.EqualFold(filepath.Base(name), "explorer.exe")
}

// parentImage returns the executable name of the parent process.
func parentImage() (string, bool) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return "", false
	}
	defer windows.CloseHandle(snap)

	procs := make(map[uint32]windows.ProcessEntry32)
	var e windows.ProcessEntry32
	e.Size = uint32(unsafe.Sizeof(e))
	for err = windows.Process32First(snap, &e); err == nil; err = windows.Process32Next(snap, &e) {
		procs[e.ProcessID] = e
	}

	self, ok := procs[uint32(os.Getpid())]
	if !ok {
		return "", false
	}
	parent, ok := procs[self.ParentProcessID]
	if !ok {
		return "", false
	}
	return windows.UTF16ToString(parent.ExeFile[:]), true
}

var (
	handlerOnce sync.Once
	handlerFn   uintptr
	shutdownFn  func()
	shutdownMu  sync.Mutex
	fired       sync.Once
)

// SetupConsoleHandler calls shutdown once on Ctrl+C or Ctrl+Break. The
// returned function re-registers the handler; call it after SDL init,
// which installs its own.
func SetupConsoleHandler(shutdown func()) func() {
	shutdownMu.Lock()
	shutdownFn = shutdown
	shutdownMu.Unlock()

	// windows.NewCallback slots are never released, so create one per process.
	handlerOnce.Do(func() {
		handlerFn = windows.NewCallback(func(ctrlType uint32) uintptr {
			if ctrlType != ctrlCEvent && ctrlType != ctrlBreakEvent {
				return 0
			}
			shutdownMu.Lock()
			fn := shutdownFn
			shutdownMu.Unlock()
			if fn != nil {
				fired.Do(fn)
			}
			return 1
		})
	})

	register := func() {
		procSetConsoleCtrlHandler.Call(handlerFn, 1)
	}
	register()
	return register
}
