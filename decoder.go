package wav

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

// Mode selects what happens once the sample-bearing chunks are exhausted.
type Mode int

const (
	// ModeSingle stops decoding at the end of the stream.
	ModeSingle Mode = iota
	// ModeContinuous starts over from the first sample-bearing chunk.
	ModeContinuous
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeContinuous:
		return "continuous"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMode sets the end-of-stream behaviour. The default is ModeSingle.
func WithMode(mode Mode) Option {
	return func(d *Decoder) {
		d.mode = mode
	}
}

// WithLogger routes chunk walking traces to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Decoder streams PCM frames out of a RIFF/WAVE container, including wave
// lists ("LIST"/"wavl") alternating data and slnt sub-chunks. Every frame is
// normalized to interleaved int16 samples.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	walker       chunkWalker
	subchunks    *subchunkRegistry
	mode         Mode
	logger       *slog.Logger
	headerChunks []ChunkHeader

	NumChans       uint16
	BitDepth       uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	WavAudioFormat uint16
	// RiffSize is the size declared by the RIFF header.
	RiffSize uint32
	FmtChunk *FmtChunk

	format            sampleFormat
	normalize         normalizeFunc
	frameSize         int
	channelSampleSize int

	firstSubchunkOffset int64
	nextSubchunkOffset  int64
	remainingFrames     uint32
	silence             bool
	framesSinceRestart  int
	frame               [MaxFrameSize]byte

	opened  bool
	err     error
	scratch []int16
}

// NewDecoder creates a closed decoder reading from src. Call Open before
// decoding.
func NewDecoder(src ByteSource, opts ...Option) *Decoder {
	d := &Decoder{
		walker:    chunkWalker{src: src},
		subchunks: newDefaultSubchunkRegistry(),
		logger:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// header holds everything Open parses before committing it to the decoder.
type header struct {
	riffSize          uint32
	fmtChunk          FmtChunk
	format            sampleFormat
	frameSize         int
	channelSampleSize int
	firstSubchunk     int64
	chunks            []ChunkHeader
}

// Open parses the container up to the first sample-bearing chunk. On error
// the decoder is left closed and none of its format fields are set; it should
// be discarded.
func (d *Decoder) Open() error {
	if d == nil || d.walker.src == nil {
		return errNilSource
	}

	d.reset()

	hdr, err := d.readHeader()
	if err != nil {
		d.logger.Debug("wav: open failed", "error", err)
		return err
	}

	fc := hdr.fmtChunk
	d.FmtChunk = &fc
	d.NumChans = fc.NumChannels
	d.BitDepth = fc.BitsPerSample
	d.SampleRate = fc.SampleRate
	d.AvgBytesPerSec = fc.AvgBytesPerSec
	d.BlockAlign = fc.BlockAlign
	d.WavAudioFormat = fc.FormatTag
	d.RiffSize = hdr.riffSize
	d.headerChunks = hdr.chunks

	d.format = hdr.format
	d.frameSize = hdr.frameSize
	d.channelSampleSize = hdr.channelSampleSize
	d.normalize = normalizerFor(hdr.channelSampleSize)
	d.firstSubchunkOffset = hdr.firstSubchunk

	clear(d.frame[:])
	d.restart()
	d.opened = true

	d.logger.Debug("wav: opened",
		"format", d.format.name(),
		"channels", d.NumChans,
		"sample_rate", d.SampleRate,
		"block_align", d.BlockAlign,
		"bits_per_sample", d.BitDepth,
		"first_subchunk", d.firstSubchunkOffset)

	return nil
}

// IsValidFile reports whether Open succeeds on the source.
func (d *Decoder) IsValidFile() bool {
	return d.Open() == nil
}

// Opened reports whether the decoder holds a successfully opened stream.
func (d *Decoder) Opened() bool {
	return d != nil && d.opened
}

// Close returns the decoder to its closed state. The byte source is left
// untouched; it belongs to the caller.
func (d *Decoder) Close() error {
	if d == nil {
		return nil
	}

	d.reset()

	return nil
}

// Rewind moves decoding back to the first sample-bearing chunk and clears the
// recorded error. The frame buffer keeps its content.
func (d *Decoder) Rewind() error {
	if !d.Opened() {
		return ErrNotOpened
	}

	d.restart()
	d.err = nil

	return nil
}

// Err returns the first error other than a clean end of stream that stopped
// decoding.
func (d *Decoder) Err() error {
	if d == nil || errors.Is(d.err, io.EOF) {
		return nil
	}

	return d.err
}

// EOF reports whether decoding stopped at a clean end of stream.
func (d *Decoder) EOF() bool {
	if d == nil {
		return true
	}

	return errors.Is(d.err, io.EOF)
}

// DecodeToI16 decodes up to maxFrames frames into dst as interleaved int16
// samples and returns the number of frames written. maxFrames is capped by
// what dst can hold. Returning fewer frames than asked means the stream ended
// or could not be decoded further; Err tells the two apart.
func (d *Decoder) DecodeToI16(dst []int16, maxFrames int) int {
	if !d.Opened() || d.err != nil {
		return 0
	}

	channels := int(d.NumChans)
	maxFrames = min(maxFrames, len(dst)/channels)

	for i := range maxFrames {
		err := d.decodeNextFrame()
		if err != nil {
			d.err = err
			return i
		}

		d.normalize(d.frame[:d.frameSize], d.channelSampleSize, dst[i*channels:(i+1)*channels])
	}

	return max(maxFrames, 0)
}

// PCMBuffer populates buf.Data with normalized samples and returns the number
// of samples written. Only whole frames are written.
func (d *Decoder) PCMBuffer(buf *audio.IntBuffer) (int, error) {
	if buf == nil {
		return 0, nil
	}

	n, err := d.decodeScratch(len(buf.Data))
	for i := range n {
		buf.Data[i] = int(d.scratch[i])
	}

	buf.Format = d.Format()
	buf.SourceBitDepth = 16

	return n, err
}

// PCMFloat32Buffer populates buf.Data with normalized samples scaled to
// [-1, 1) and returns the number of samples written.
func (d *Decoder) PCMFloat32Buffer(buf *audio.Float32Buffer) (int, error) {
	if buf == nil {
		return 0, nil
	}

	n, err := d.decodeScratch(len(buf.Data))
	for i := range n {
		buf.Data[i] = int16ToFloat32(d.scratch[i])
	}

	buf.Format = d.Format()
	buf.SourceBitDepth = 16

	return n, err
}

// FullPCMBuffer decodes the rest of the stream into memory.
func (d *Decoder) FullPCMBuffer() (*audio.IntBuffer, error) {
	if !d.Opened() {
		return nil, ErrNotOpened
	}

	if d.mode == ModeContinuous {
		return nil, ErrContinuousFullBuffer
	}

	out := &audio.IntBuffer{
		Format:         d.Format(),
		SourceBitDepth: 16,
	}

	chunk := &audio.IntBuffer{Data: make([]int, 4096*int(d.NumChans))}

	for {
		n, err := d.PCMBuffer(chunk)
		out.Data = append(out.Data, chunk.Data[:n]...)

		if err != nil {
			return out, err
		}

		if n < len(chunk.Data) {
			return out, nil
		}
	}
}

// Format returns the audio format of the decoded content.
func (d *Decoder) Format() *audio.Format {
	if d == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(d.NumChans),
		SampleRate:  int(d.SampleRate),
	}
}

// FramesDuration returns the playback time of n frames.
func (d *Decoder) FramesDuration(n int) time.Duration {
	if d == nil {
		return 0
	}

	return framesDuration(n, d.SampleRate)
}

// String implements the Stringer interface.
func (d *Decoder) String() string {
	if !d.Opened() {
		return "Format: none"
	}

	return fmt.Sprintf("Format: %s - %d channels @ %d / %d bits - %d bytes per frame",
		d.format.name(), d.NumChans, d.SampleRate, d.BitDepth, d.frameSize)
}

func (d *Decoder) decodeScratch(samples int) (int, error) {
	if !d.Opened() {
		return 0, ErrNotOpened
	}

	channels := int(d.NumChans)
	frames := samples / channels

	if cap(d.scratch) < frames*channels {
		d.scratch = make([]int16, frames*channels)
	}

	d.scratch = d.scratch[:frames*channels]
	n := d.DecodeToI16(d.scratch, frames)

	return n * channels, d.Err()
}

// decodeNextFrame loads the next frame into the frame buffer. In continuous
// mode the end of the sample-bearing chunks starts a new pass, unless the
// last pass produced nothing.
func (d *Decoder) decodeNextFrame() error {
	err := d.format.nextFrame(d)
	if err == nil {
		d.framesSinceRestart++
		return nil
	}

	if d.mode != ModeContinuous || d.framesSinceRestart == 0 || !isEndOfSequence(err) {
		return err
	}

	d.logger.Debug("wav: end of sample chunks, restarting", "offset", d.firstSubchunkOffset, "cause", err)
	d.restart()

	return d.decodeNextFrame()
}

// enterSubchunk reads the header of the sub-chunk at nextSubchunkOffset and
// sets up its frame count and silence flag.
func (d *Decoder) enterSubchunk() error {
	err := d.walker.seek(d.nextSubchunkOffset)
	if err != nil {
		return err
	}

	id, err := d.walker.readBoundaryID("sub-chunk id")
	if err != nil {
		return err
	}

	handler, err := d.subchunks.Lookup(id)
	if err != nil {
		return err
	}

	size, err := d.walker.readU32("sub-chunk size")
	if err != nil {
		return err
	}

	payload, err := d.walker.tell()
	if err != nil {
		return err
	}

	frames, silent, err := handler.Begin(d, size)
	if err != nil {
		return fmt.Errorf("%q sub-chunk: %w", id[:], err)
	}

	d.silence = silent
	d.remainingFrames = frames
	d.nextSubchunkOffset = evenOffset(payload + int64(size))

	d.logger.Debug("wav: sub-chunk",
		"id", string(id[:]),
		"offset", payload-8,
		"size", size,
		"frames", frames,
		"silent", silent)

	return nil
}

func (d *Decoder) restart() {
	d.nextSubchunkOffset = d.firstSubchunkOffset
	d.remainingFrames = 0
	d.silence = false
	d.framesSinceRestart = 0
}

func (d *Decoder) reset() {
	d.opened = false
	d.err = nil
	d.format = nil
	d.normalize = nil
	d.FmtChunk = nil
	d.NumChans = 0
	d.BitDepth = 0
	d.SampleRate = 0
	d.AvgBytesPerSec = 0
	d.BlockAlign = 0
	d.WavAudioFormat = 0
	d.RiffSize = 0
	d.headerChunks = nil
	d.frameSize = 0
	d.channelSampleSize = 0
	d.firstSubchunkOffset = 0
	d.restart()
}

func (d *Decoder) readHeader() (*header, error) {
	w := &d.walker
	hdr := &header{}

	err := w.seek(0)
	if err != nil {
		return nil, err
	}

	err = w.expectID(riff.RiffID, "RIFF id", riff.ErrFmtNotSupported)
	if err != nil {
		return nil, err
	}

	hdr.riffSize, err = w.readU32("RIFF size")
	if err != nil {
		return nil, err
	}

	err = w.expectID(riff.WavFormatID, "RIFF type", riff.ErrFmtNotSupported)
	if err != nil {
		return nil, err
	}

	fmtOffset, err := w.tell()
	if err != nil {
		return nil, err
	}

	err = w.expectID(riff.FmtID, "fmt chunk id", riff.ErrUnexpectedData)
	if err != nil {
		return nil, err
	}

	fmtSize, err := w.readU32("fmt chunk size")
	if err != nil {
		return nil, err
	}

	hdr.chunks = append(hdr.chunks, ChunkHeader{ID: riff.FmtID, Size: fmtSize, Offset: fmtOffset})

	next, err := w.skipOffset(fmtSize)
	if err != nil {
		return nil, err
	}

	err = d.readFmtFields(hdr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fmt chunk: %w", err)
	}

	for {
		err = w.seek(next)
		if err != nil {
			return nil, err
		}

		id, err := w.readID("chunk id")
		if err != nil {
			return nil, err
		}

		switch id {
		case riff.DataFormatID:
			hdr.chunks = append(hdr.chunks, ChunkHeader{ID: id, Offset: next})
			hdr.firstSubchunk = next

			return hdr, nil
		case CIDList:
			size, err := w.readU32("LIST size")
			if err != nil {
				return nil, err
			}

			err = w.expectID(CIDWavl, "LIST type", errListType)
			if err != nil {
				return nil, err
			}

			first, err := w.tell()
			if err != nil {
				return nil, err
			}

			hdr.chunks = append(hdr.chunks, ChunkHeader{ID: id, Size: size, Offset: next})
			hdr.firstSubchunk = evenOffset(first)

			return hdr, nil
		default:
			size, err := w.readU32("chunk size")
			if err != nil {
				return nil, err
			}

			hdr.chunks = append(hdr.chunks, ChunkHeader{ID: id, Size: size, Offset: next})
			d.logger.Debug("wav: skipping chunk", "id", string(id[:]), "offset", next, "size", size)

			next, err = w.skipOffset(size)
			if err != nil {
				return nil, err
			}
		}
	}
}

func (d *Decoder) readFmtFields(hdr *header) error {
	w := &d.walker
	fc := &hdr.fmtChunk

	var err error

	fc.FormatTag, err = w.readU16("format tag")
	if err != nil {
		return err
	}

	hdr.format, err = newSampleFormat(fc.FormatTag)
	if err != nil {
		return err
	}

	fc.NumChannels, err = w.readU16("channel count")
	if err != nil {
		return err
	}

	if fc.NumChannels < 1 || fc.NumChannels > MaxChannels {
		return structuralError(errChannelCount, "%d channels, want 1 to %d", fc.NumChannels, MaxChannels)
	}

	fc.SampleRate, err = w.readU32("sample rate")
	if err != nil {
		return err
	}

	fc.AvgBytesPerSec, err = w.readU32("avg bytes/sec")
	if err != nil {
		return err
	}

	fc.BlockAlign, err = w.readU16("block align")
	if err != nil {
		return err
	}

	hdr.frameSize, err = hdr.format.readFields(w, fc)
	if err != nil {
		return err
	}

	hdr.channelSampleSize = hdr.frameSize / int(fc.NumChannels)

	return nil
}

// isEndOfSequence reports whether err marks the end of the sample-bearing
// chunks rather than a damaged one: no byte left where a sub-chunk would
// start, or a chunk that is neither data nor slnt.
func isEndOfSequence(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, riff.ErrUnexpectedData)
}
