// Package frame defines the fixed-size PCM frames flowing from a capture
// source to the utterance segmenter, and the format they are encoded in.
package frame

import (
	"time"
)

// Frame is one capture period of 16-bit signed little-endian mono PCM.
//
// A Frame must not be modified after it was produced: the producing source
// hands it over to exactly one consumer.
type Frame struct {
	Data []byte

	// Timestamp is the position of the first sample of the frame
	// relative to the beginning of the capture session.
	Timestamp time.Duration
}

// Len returns the length of the frame in bytes.
func (f Frame) Len() int {
	return len(f.Data)
}

// Frames is a sequence of frames in capture order.
type Frames []Frame

// Bytes returns the concatenated audio of all the frames.
func (s Frames) Bytes() []byte {
	size := 0
	for _, f := range s {
		size += len(f.Data)
	}
	result := make([]byte, 0, size)
	for _, f := range s {
		result = append(result, f.Data...)
	}
	return result
}
