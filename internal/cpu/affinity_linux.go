//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore pins the current OS thread to one CPU core.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) error {
	var mask unix.CPUSet
	mask.Zero()
	mask.Set(coreFor(cpuID))

	return unix.SchedSetaffinity(0, &mask) // 0 = current thread
}

// Pin locks the calling goroutine to its OS thread and pins that thread to
// the core workerID maps onto. Pinning failures are reported through the
// returned error; the thread stays locked either way.
// The returned release function must be called from the same goroutine.
func Pin(workerID int) (release func(), err error) {
	runtime.LockOSThread()
	err = pinToCore(workerID)

	return runtime.UnlockOSThread, err
}
