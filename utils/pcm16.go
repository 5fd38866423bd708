// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// Int16ToBytes encodes interleaved int16 samples as little-endian PCM bytes.
// dst must hold at least len(samples)*2 bytes.
func Int16ToBytes(samples []int16, dst []byte) {
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[2*i:2*i+2], uint16(s))
	}
}

// BytesToInt16 decodes little-endian PCM bytes into int16 samples.
// dst must hold at least len(b)/2 samples; odd trailing bytes are ignored.
func BytesToInt16(b []byte, dst []int16) int {
	n := len(b) / 2
	for i := 0; i < n; i++ {
		dst[i] = int16(binary.LittleEndian.Uint16(b[2*i : 2*i+2]))
	}
	return n
}

// Int16ToFloat32 maps a 16-bit PCM sample to [-1, 1).
func Int16ToFloat32(s int16) float32 {
	return float32(s) / 32768.0
}
