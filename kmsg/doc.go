// Copyright © 2021-2025 The Gomon Project.

/*
Package kmsg reads and decodes the kernel message log exposed by the /dev/kmsg device.

The device delivers one record per read. Each record is a header line
	<priority>,<sequence>,<timestamp>,<flags>[,<extra>...];<message>
followed by zero or more metadata lines of the form " KEY=value". The kernel encodes
non-printable message bytes as \xNN, which Parse decodes.

A Source owns the open device. It retries reads that fail because the kernel
overwrote the record being read, reports "nothing buffered" to the caller rather than
blocking, and offers Wait for callers that follow the log.
*/
package kmsg
