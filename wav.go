package wav

import (
	"math"
	"time"
)

const (
	// MaxChannels is the largest channel count Open accepts.
	MaxChannels = 2
	// MaxFrameSize is the largest block alignment, in bytes, Open accepts.
	MaxFrameSize = 16
)

var (
	// CIDList is the chunk ID for a LIST chunk.
	CIDList = [4]byte{'L', 'I', 'S', 'T'}
	// CIDWavl is the LIST type of a wave list alternating data and slnt chunks.
	CIDWavl = [4]byte{'w', 'a', 'v', 'l'}
	// CIDSlnt is the chunk ID for a silent sub-chunk inside a wave list.
	CIDSlnt = [4]byte{'s', 'l', 'n', 't'}
)

func framesDuration(frames int, sampleRate uint32) time.Duration {
	if sampleRate == 0 {
		return 0
	}

	return time.Duration(math.Round(float64(frames) * float64(time.Second) / float64(sampleRate)))
}
