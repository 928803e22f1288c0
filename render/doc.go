// Copyright © 2021-2025 The Gomon Project.

/*
Package render formats kernel log records for output.

Three renderers are available, selected once per run:
  - Raw:    the device's own record grammar, byte for byte
  - Decode: human readable lines with timestamps, optional facility:level prefix,
    escaping of non-printable bytes, color, and joining of continuation records
  - JSON:   one object per record inside a single {"dmesg": [...]} document

Renderers hold no state of their own. The one record lookback they need is passed in
and returned as a Context.
*/
package render
