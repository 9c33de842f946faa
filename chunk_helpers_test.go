package wav

import (
	"bytes"
	"encoding/binary"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

// newTestChunk declares a chunk whose size matches its payload.
func newTestChunk(id string, data []byte) testChunk {
	return testChunk{id: id, size: uint32(len(data)), data: data}
}

func pcmFmtChunk(channels uint16, sampleRate uint32, blockAlign, bitsPerSample uint16) testChunk {
	return newTestChunk("fmt ", fmtChunkBody(wavFormatPCM, channels, sampleRate, blockAlign, bitsPerSample))
}

func fmtChunkBody(formatTag, channels uint16, sampleRate uint32, blockAlign, bitsPerSample uint16) []byte {
	body := make([]byte, 16)
	binary.LittleEndian.PutUint16(body[0:2], formatTag)
	binary.LittleEndian.PutUint16(body[2:4], channels)
	binary.LittleEndian.PutUint32(body[4:8], sampleRate)
	binary.LittleEndian.PutUint32(body[8:12], sampleRate*uint32(blockAlign))
	binary.LittleEndian.PutUint16(body[12:14], blockAlign)
	binary.LittleEndian.PutUint16(body[14:16], bitsPerSample)

	return body
}

func slntChunk(frames uint32) testChunk {
	return newTestChunk("slnt", binary.LittleEndian.AppendUint32(nil, frames))
}

func wavlChunk(subchunks ...testChunk) testChunk {
	return newTestChunk("LIST", append([]byte("wavl"), encodeChunks(subchunks...)...))
}

// int16Frames lays out samples as little-endian int16 PCM data.
func int16Frames(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}

	return out
}

// encodeChunks writes each chunk header and payload, adding a pad byte after
// odd-sized payloads. The declared size is written as is, even when it does
// not match the payload.
func encodeChunks(chunks ...testChunk) []byte {
	var buf bytes.Buffer

	for _, ch := range chunks {
		buf.WriteString(ch.id)
		buf.Write(binary.LittleEndian.AppendUint32(nil, ch.size))
		buf.Write(ch.data)

		if len(ch.data)%2 == 1 {
			buf.WriteByte(0)
		}
	}

	return buf.Bytes()
}

func buildWav(chunks ...testChunk) []byte {
	body := encodeChunks(chunks...)

	out := make([]byte, 0, 12+len(body))
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(4+len(body)))
	out = append(out, "WAVE"...)

	return append(out, body...)
}

// topLevelIDs lists the ids of the chunks following the RIFF/WAVE header,
// stopping at the first header that does not fit in data.
func topLevelIDs(data []byte) []string {
	var ids []string

	for offset := 12; offset+8 <= len(data); {
		ids = append(ids, string(data[offset:offset+4]))
		size := int64(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		offset = int(evenOffset(int64(offset) + 8 + size))
	}

	return ids
}

// countingSource records every call reaching the wrapped source.
type countingSource struct {
	ByteSource

	tells, seeks, reads int
}

func (s *countingSource) Read(p []byte) (int, error) {
	s.reads++
	return s.ByteSource.Read(p)
}

func (s *countingSource) Tell() (int64, error) {
	s.tells++
	return s.ByteSource.Tell()
}

func (s *countingSource) SeekTo(offset int64) error {
	s.seeks++
	return s.ByteSource.SeekTo(offset)
}

func (s *countingSource) calls() int {
	return s.tells + s.seeks + s.reads
}

func newBytesDecoder(data []byte, opts ...Option) *Decoder {
	return NewDecoder(NewReadSeekerSource(bytes.NewReader(data)), opts...)
}
