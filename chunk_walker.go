package wav

import (
	"encoding/binary"
	"errors"
	"io"
)

// chunkWalker reads tags, sizes and payload bytes off a ByteSource and
// computes where the next chunk starts. Every error it returns wraps ErrIO.
type chunkWalker struct {
	src ByteSource
	buf [4]byte
}

func (w *chunkWalker) tell() (int64, error) {
	pos, err := w.src.Tell()
	if err != nil {
		return 0, ioError(err, "position query")
	}

	return pos, nil
}

func (w *chunkWalker) seek(offset int64) error {
	err := w.src.SeekTo(offset)
	if err != nil {
		return ioError(err, "seek to %d", offset)
	}

	return nil
}

// readFull fills p or fails. Running out of data mid-read is reported as
// io.ErrUnexpectedEOF, even when nothing at all could be read.
func (w *chunkWalker) readFull(p []byte, what string) error {
	_, err := io.ReadFull(w.src, p)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	return ioError(err, "read %s", what)
}

func (w *chunkWalker) readID(what string) ([4]byte, error) {
	var id [4]byte

	err := w.readFull(id[:], what)

	return id, err
}

// readBoundary fills p where the stream may legitimately end. A source with
// no byte left yields an error wrapping io.EOF; a partial read is reported as
// io.ErrUnexpectedEOF.
func (w *chunkWalker) readBoundary(p []byte, what string) error {
	n, err := io.ReadFull(w.src, p)
	if err == nil {
		return nil
	}

	if n > 0 && errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	return ioError(err, "read %s", what)
}

// readBoundaryID reads a chunk id at a sub-chunk boundary.
func (w *chunkWalker) readBoundaryID(what string) ([4]byte, error) {
	var id [4]byte

	err := w.readBoundary(id[:], what)

	return id, err
}

func (w *chunkWalker) expectID(want [4]byte, what string, cause error) error {
	id, err := w.readID(what)
	if err != nil {
		return err
	}

	if id != want {
		return structuralError(cause, "%s is %q, want %q", what, id[:], want[:])
	}

	return nil
}

func (w *chunkWalker) readU16(what string) (uint16, error) {
	err := w.readFull(w.buf[:2], what)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(w.buf[:2]), nil
}

func (w *chunkWalker) readU32(what string) (uint32, error) {
	err := w.readFull(w.buf[:4], what)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(w.buf[:4]), nil
}

// skipOffset returns where a chunk whose payload starts at the current
// position and spans size bytes is followed by the next chunk.
func (w *chunkWalker) skipOffset(size uint32) (int64, error) {
	pos, err := w.tell()
	if err != nil {
		return 0, err
	}

	return evenOffset(pos + int64(size)), nil
}

// evenOffset applies the RIFF padding rule: chunks start on even offsets.
func evenOffset(offset int64) int64 {
	if offset%2 != 0 {
		offset++
	}

	return offset
}
