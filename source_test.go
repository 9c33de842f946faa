package wav

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReadSeekerSource(t *testing.T) {
	src := NewReadSeekerSource(bytes.NewReader([]byte("RIFFxxxx")))

	if err := src.SeekTo(4); err != nil {
		t.Fatal(err)
	}

	pos, err := src.Tell()
	if err != nil || pos != 4 {
		t.Fatalf("Tell()=(%d, %v), want (4, nil)", pos, err)
	}

	if err := src.SeekTo(-1); err == nil {
		t.Fatal("expected a negative seek to fail")
	}
}

func TestSourceFuncsDecode(t *testing.T) {
	data := mono16Wav(11, -11)
	r := bytes.NewReader(data)

	src := SourceFuncs{
		TellFunc: func() (int64, error) { return r.Seek(0, io.SeekCurrent) },
		SeekFunc: func(offset int64) error {
			_, err := r.Seek(offset, io.SeekStart)
			return err
		},
		ReadFunc: r.Read,
	}

	d := NewDecoder(src)
	if err := d.Open(); err != nil {
		t.Fatal(err)
	}

	got := make([]int16, 2)
	if n := d.DecodeToI16(got, 2); n != 2 || got[0] != 11 || got[1] != -11 {
		t.Fatalf("DecodeToI16=%d %v, want 2 [11 -11]", n, got)
	}
}

func TestSourceFuncsMissingCallback(t *testing.T) {
	r := bytes.NewReader(mono16Wav(1))

	src := SourceFuncs{
		SeekFunc: func(offset int64) error {
			_, err := r.Seek(offset, io.SeekStart)
			return err
		},
		ReadFunc: r.Read,
	}

	// Tell is first needed right after the RIFF type
	err := NewDecoder(src).Open()
	if !errors.Is(err, ErrIO) || !errors.Is(err, errNilSourceFunc) {
		t.Fatalf("Open()=%v, want a wrapped %v", err, errNilSourceFunc)
	}
}

func TestFailingSeekIsAnIOError(t *testing.T) {
	errBoom := errors.New("boom")
	src := SourceFuncs{
		TellFunc: func() (int64, error) { return 0, nil },
		SeekFunc: func(int64) error { return errBoom },
		ReadFunc: func([]byte) (int, error) { return 0, io.EOF },
	}

	err := NewDecoder(src).Open()
	if !errors.Is(err, ErrIO) || !errors.Is(err, errBoom) {
		t.Fatalf("Open()=%v, want a wrapped %v", err, errBoom)
	}
}
