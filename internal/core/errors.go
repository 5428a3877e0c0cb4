// Package core defines sentinel errors.
package core

import "errors"

var (
	// Batch errors
	ErrBatchFull = errors.New("ctbench: batch full")

	// Packet decoding errors
	ErrPacketTooShort   = errors.New("ctbench: packet too short")
	ErrUnsupportedProto = errors.New("ctbench: unsupported protocol")

	// Configuration errors
	ErrConfigInvalid = errors.New("ctbench: invalid configuration")
)
