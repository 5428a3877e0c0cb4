// Package source abstracts where captured packets come from.
package source

import "github.com/google/gopacket"

// Source yields raw frames in arrival order. ReadPacket returns io.EOF at
// the end of the capture; any other error also terminates the stream.
type Source interface {
	ReadPacket() ([]byte, gopacket.CaptureInfo, error)
	Close() error
}
