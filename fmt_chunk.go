package wav

// FmtChunk stores the parsed WAV fmt chunk fields.
type FmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	// BitsPerSample is informational; frame layout follows BlockAlign.
	BitsPerSample uint16
}

// Clone returns a copy of f.
func (f *FmtChunk) Clone() *FmtChunk {
	if f == nil {
		return nil
	}

	out := *f

	return &out
}

// sampleFormat is one variant of the audio format carried by the fmt chunk.
// Chunk walking is shared; reading the format-specific fmt fields and
// producing the next frame are per variant.
type sampleFormat interface {
	name() string
	// readFields reads the fields following BlockAlign and returns the frame
	// size in bytes.
	readFields(w *chunkWalker, f *FmtChunk) (int, error)
	nextFrame(d *Decoder) error
}

func newSampleFormat(formatTag uint16) (sampleFormat, error) {
	switch formatTag {
	case wavFormatPCM:
		return pcmFormat{}, nil
	default:
		return nil, structuralError(errUnsupportedFormat, "format tag %d", formatTag)
	}
}
