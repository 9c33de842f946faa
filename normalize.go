package wav

import "encoding/binary"

// normalizeFunc converts one raw frame into one int16 per channel of dst.
// channelSize is the width in bytes of each channel's slot in the frame.
type normalizeFunc func(frame []byte, channelSize int, dst []int16)

func normalizerFor(channelSize int) normalizeFunc {
	if channelSize == 1 {
		return normalizeU8
	}

	return normalizeTail16
}

// normalizeU8 centers unsigned 8-bit samples and scales them with a shift,
// so 255 maps to 32512 rather than 32767.
func normalizeU8(frame []byte, _ int, dst []int16) {
	for ch := range dst {
		dst[ch] = (int16(frame[ch]) - 128) << 8
	}
}

// normalizeTail16 keeps the two most significant bytes of each channel slot
// and drops the rest without rounding.
func normalizeTail16(frame []byte, channelSize int, dst []int16) {
	for ch := range dst {
		tail := ch*channelSize + channelSize - 2
		dst[ch] = int16(binary.LittleEndian.Uint16(frame[tail : tail+2]))
	}
}
