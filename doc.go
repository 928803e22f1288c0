// Copyright © 2021-2025 The Gomon Project.

/*
Package main implements the Go language "godmesg" command, which prints or follows the
Linux kernel log by reading records from /dev/kmsg. Records are filtered by level and
facility and written raw, decoded for reading, or as a JSON document.

The main package defines the following command line flags:
  - -follow:       wait for new records after the buffered ones are printed
  - -end:          with -follow, print only records logged after startup
  - -raw:          print records in the device's own format
  - -json:         print records as a JSON document, overriding -raw
  - -decode:       prefix each line with facility and level names
  - -level:        comma-separated levels to print, with err+ and +err ranges
  - -facility:     comma-separated facilities to print
  - -time:         timestamp format, raw, delta, ctime, iso or notime
  - -color:        auto, always or never
  - -noescape:     print non-printable characters unescaped
  - -force-prefix: repeat the prefix on each line of a multi-line message
  - -pager:        page output through $PAGER
  - -config:       a YAML file of flag values
  - -port:         serve /metrics and /ws on localhost (see package serve)
*/
package main
