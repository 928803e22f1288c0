// Copyright © 2021-2025 The Gomon Project.

package kmsg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// pipeDevice builds a kmsgDevice that polls the read end of a pipe in place of /dev/kmsg.
func pipeDevice(t *testing.T) (*kmsgDevice, int) {
	t.Helper()
	var p [2]int
	require.NoError(t, unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC))
	d := &kmsgDevice{fd: p[0]}
	require.NoError(t, unix.Pipe2(d.wake[:], unix.O_NONBLOCK|unix.O_CLOEXEC))
	t.Cleanup(func() { unix.Close(p[1]) })
	return d, p[1]
}

func TestDeviceWaitCancel(t *testing.T) {
	d, w := pipeDevice(t)
	defer d.close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- d.wait(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("wait not interrupted by cancel")
	}

	// the wake pipe is drained, so a new wait blocks until the device has data
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	go func() {
		done <- d.wait(ctx2)
	}()
	select {
	case err := <-done:
		t.Fatalf("wait returned %v before data was written", err)
	case <-time.After(20 * time.Millisecond):
	}

	_, err := unix.Write(w, []byte("6,1,100,-;one\n"))
	require.NoError(t, err)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("wait not woken by data")
	}

	buf := make([]byte, RecordMax)
	n, err := d.read(buf)
	require.NoError(t, err)
	assert.Equal(t, readData, classify(n, err))
	assert.Equal(t, "6,1,100,-;one\n", string(buf[:n]))

	n, err = d.read(buf)
	assert.Equal(t, readWouldBlock, classify(n, err))
}

func TestDeviceClose(t *testing.T) {
	d, _ := pipeDevice(t)
	fds := []int{d.fd, d.wake[0], d.wake[1]}

	require.NoError(t, d.close())
	for _, fd := range fds {
		_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
		assert.ErrorIs(t, err, unix.EBADF, "fd %d", fd)
	}
}
