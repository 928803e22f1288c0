// Copyright © 2021-2025 The Gomon Project.

//go:build !linux

package kmsg

import (
	"github.com/zosmac/gocore"
)

// openDevice reports that only Linux provides the kernel message log device.
func openDevice(string) (device, error) {
	return nil, gocore.Unsupported()
}

// classify treats every read error as fatal.
func classify(n int, err error) readResult {
	if err != nil {
		return readFatal
	}
	if n <= 0 {
		return readEnd
	}
	return readData
}
