// Copyright © 2021-2025 The Gomon Project.

/*
Package follow drives the kernel log pipeline: read, parse, filter, render, write.

A Loop starts Draining the records the kernel has buffered. When no record is left it
either terminates or, when following, moves to Following and waits for new records
until its context is cancelled. A closed output ends the loop without error.
*/
package follow
