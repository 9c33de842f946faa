package wav

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural reports a stream whose chunk layout or format fields
	// cannot be decoded: bad magic, unsupported format tag, channel count or
	// frame size out of bounds, unexpected sub-chunk tag.
	ErrStructural = errors.New("malformed wav stream")
	// ErrIO reports a failed seek or position query, or a short read, on the
	// injected byte source.
	ErrIO = errors.New("wav source i/o failure")
	// ErrNotOpened is returned by buffer APIs used before a successful Open.
	ErrNotOpened = errors.New("decoder not opened")
	// ErrContinuousFullBuffer is returned by FullPCMBuffer in continuous mode,
	// where the stream never ends.
	ErrContinuousFullBuffer = errors.New("can't buffer a continuous stream")

	errUnsupportedFormat = errors.New("unsupported wav format")
	errChannelCount      = errors.New("channel count out of range")
	errFrameSize         = errors.New("frame size out of range")
	errListType          = errors.New("unsupported LIST type")
	errNilSource         = errors.New("nil byte source")
)

func structuralError(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrStructural, fmt.Sprintf(format, args...), cause)
}

func ioError(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, fmt.Sprintf(format, args...), cause)
}
