//go:build windows

package cpu

import (
	"runtime"

	"golang.org/x/sys/windows"
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
)

// pinToCore pins the current OS thread to one CPU core.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) error {
	// Bit N = CPU N
	mask := uintptr(1) << uint(coreFor(cpuID))

	prevMask, _, err := setThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if prevMask == 0 {
		return err
	}
	return nil
}

// Pin locks the calling goroutine to its OS thread and pins that thread to
// the core workerID maps onto.
// The returned release function must be called from the same goroutine.
func Pin(workerID int) (release func(), err error) {
	runtime.LockOSThread()
	err = pinToCore(workerID)

	return runtime.UnlockOSThread, err
}
