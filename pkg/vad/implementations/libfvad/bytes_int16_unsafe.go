package libfvad

import (
	"encoding/binary"
	"unsafe"
)

// samplesFromBytes returns S16LE bytes as samples. An aligned buffer is
// reinterpreted in place; a misaligned one is copied.
func samplesFromBytes(b []byte) []int16 {
	count := len(b) / 2
	if count == 0 {
		return nil
	}
	ptr := unsafe.SliceData(b)
	if uintptr(unsafe.Pointer(ptr))%unsafe.Alignof(int16(0)) == 0 {
		return unsafe.Slice((*int16)(unsafe.Pointer(ptr)), count)
	}

	result := make([]int16, count)
	for idx := range result {
		result[idx] = int16(binary.LittleEndian.Uint16(b[idx*2:]))
	}
	return result
}
