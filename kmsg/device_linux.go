// Copyright © 2021-2025 The Gomon Project.

package kmsg

import (
	"context"

	"golang.org/x/sys/unix"
)

type (
	// kmsgDevice reads the device without blocking, polling for input alongside a wake pipe
	// that is written when the waiting context is cancelled.
	kmsgDevice struct {
		fd   int
		wake [2]int
	}
)

// openDevice opens the device for non-destructive, non-blocking reads.
func openDevice(path string) (device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	d := &kmsgDevice{fd: fd}
	if err := unix.Pipe2(d.wake[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return d, nil
}

func (d *kmsgDevice) read(buf []byte) (int, error) {
	return unix.Read(d.fd, buf)
}

func (d *kmsgDevice) seekEnd() error {
	_, err := unix.Seek(d.fd, 0, unix.SEEK_END)
	return err
}

func (d *kmsgDevice) wait(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		unix.Write(d.wake[1], []byte{0})
	})
	defer stop()

	fds := []unix.PollFd{
		{Fd: int32(d.fd), Events: unix.POLLIN},
		{Fd: int32(d.wake[0]), Events: unix.POLLIN},
	}
	for {
		if _, err := unix.Poll(fds, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		if fds[1].Revents != 0 {
			var b [8]byte
			for {
				if _, err := unix.Read(d.wake[0], b[:]); err != nil {
					break
				}
			}
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		// POLLERR signals an overwritten record, which the next read reports as EPIPE.
		if fds[0].Revents&(unix.POLLIN|unix.POLLERR|unix.POLLHUP) != 0 {
			return nil
		}
	}
}

func (d *kmsgDevice) close() error {
	unix.Close(d.wake[0])
	unix.Close(d.wake[1])
	return unix.Close(d.fd)
}

// classify maps a read's outcome to how Source handles it.
func classify(n int, err error) readResult {
	switch err {
	case nil:
		if n <= 0 {
			return readEnd
		}
		return readData
	case unix.EPIPE:
		return readOverwritten
	case unix.EINVAL:
		// the record does not fit the buffer, the device has moved past it
		return readOversized
	case unix.EINTR:
		return readInterrupted
	case unix.EAGAIN:
		return readWouldBlock
	}
	return readFatal
}
