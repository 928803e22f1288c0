// Copyright © 2021-2025 The Gomon Project.

package kmsg

import (
	"bytes"
	"encoding/hex"
	"strings"
)

// unescape decodes the kernel's \xNN encoding. Malformed escapes are kept as is.
func unescape(b []byte) string {
	if bytes.IndexByte(b, '\\') < 0 {
		return string(b)
	}

	out := make([]byte, 0, len(b))
	var c [1]byte
	for i := 0; i < len(b); i++ {
		if b[i] == '\\' && i+3 < len(b) && b[i+1] == 'x' {
			if _, err := hex.Decode(c[:], b[i+2:i+4]); err == nil {
				out = append(out, c[0])
				i += 3
				continue
			}
		}
		out = append(out, b[i])
	}
	return string(out)
}

// Escape encodes s as the kernel does when writing a record to the device:
// control bytes, bytes at or above 0x7f, and backslash become \xNN.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < ' ' || c >= 0x7f || c == '\\' {
			sb.WriteString(`\x`)
			sb.WriteString(hex.EncodeToString([]byte{c}))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
