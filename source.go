package wav

import (
	"errors"
	"fmt"
	"io"
)

var errNilSourceFunc = errors.New("nil source callback")

// ByteSource is the positioned byte stream the Decoder pulls from.
// The decoder never closes it; its lifetime belongs to the caller.
type ByteSource interface {
	// Read reads up to len(p) bytes. Short reads are detected by the decoder.
	io.Reader
	// Tell returns the current absolute offset.
	Tell() (int64, error)
	// SeekTo moves to an absolute offset.
	SeekTo(offset int64) error
}

// NewReadSeekerSource adapts an io.ReadSeeker (an *os.File, a *bytes.Reader...)
// into a ByteSource.
func NewReadSeekerSource(rs io.ReadSeeker) ByteSource {
	return &readSeekerSource{rs: rs}
}

type readSeekerSource struct {
	rs io.ReadSeeker
}

func (s *readSeekerSource) Read(p []byte) (int, error) {
	return s.rs.Read(p)
}

func (s *readSeekerSource) Tell() (int64, error) {
	pos, err := s.rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("failed to query position: %w", err)
	}

	return pos, nil
}

func (s *readSeekerSource) SeekTo(offset int64) error {
	_, err := s.rs.Seek(offset, io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to seek to %d: %w", offset, err)
	}

	return nil
}

// SourceFuncs builds a ByteSource out of three callbacks sharing whatever
// context they close over.
type SourceFuncs struct {
	TellFunc func() (int64, error)
	SeekFunc func(offset int64) error
	ReadFunc func(p []byte) (int, error)
}

func (f SourceFuncs) Read(p []byte) (int, error) {
	if f.ReadFunc == nil {
		return 0, errNilSourceFunc
	}

	return f.ReadFunc(p)
}

func (f SourceFuncs) Tell() (int64, error) {
	if f.TellFunc == nil {
		return 0, errNilSourceFunc
	}

	return f.TellFunc()
}

func (f SourceFuncs) SeekTo(offset int64) error {
	if f.SeekFunc == nil {
		return errNilSourceFunc
	}

	return f.SeekFunc(offset)
}
