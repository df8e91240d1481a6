package audio

import (
	"encoding/binary"
	"fmt"
)

// PCMToFloat32 converts little-endian integer PCM of the given sample width
// in bytes (1 = unsigned 8-bit, 2, 3 or 4 = signed) to samples in [-1, 1].
func PCMToFloat32(raw []byte, sampleWidth int) ([]float32, error) {
	if sampleWidth < 1 || sampleWidth > 4 {
		return nil, fmt.Errorf("%w: sample width %d", ErrUnsupportedFormat, sampleWidth)
	}
	if len(raw)%sampleWidth != 0 {
		return nil, fmt.Errorf("PCM length %d not a multiple of sample width %d", len(raw), sampleWidth)
	}

	out := make([]float32, len(raw)/sampleWidth)
	for i := range out {
		b := raw[i*sampleWidth : (i+1)*sampleWidth]

		switch sampleWidth {
		case 1:
			out[i] = (float32(b[0]) - 128) / 128
		case 2:
			out[i] = float32(int16(binary.LittleEndian.Uint16(b))) / 32768
		case 3:
			v := int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
			out[i] = float32(v) / 8388608
		case 4:
			out[i] = float32(float64(int32(binary.LittleEndian.Uint32(b))) / 2147483648)
		}
	}

	return out, nil
}
