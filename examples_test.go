package wav

import (
	"bytes"
	"fmt"
	"io"
	"log"

	ypwav "github.com/youpy/go-wav"
)

func exampleStream() *bytes.Reader {
	var buf bytes.Buffer

	w := ypwav.NewWriter(&buf, 3, 1, 8000, 16)
	if err := w.WriteSamples([]ypwav.Sample{{Values: [2]int{100}}, {Values: [2]int{-100}}, {Values: [2]int{7}}}); err != nil {
		log.Fatal(err)
	}

	return bytes.NewReader(buf.Bytes())
}

func ExampleDecoder_IsValidFile() {
	d := NewDecoder(NewReadSeekerSource(exampleStream()))

	fmt.Printf("is this file valid: %t", d.IsValidFile())
	// Output: is this file valid: true
}

func ExampleDecoder_DecodeToI16() {
	d := NewDecoder(NewReadSeekerSource(exampleStream()))
	if err := d.Open(); err != nil {
		log.Fatal(err)
	}

	fmt.Println(d)

	samples := make([]int16, 8)
	n := d.DecodeToI16(samples, 8)
	fmt.Println(n, samples[:n], d.EOF(), d.Err())
	// Output:
	// Format: PCM - 1 channels @ 8000 / 16 bits - 2 bytes per frame
	// 3 [100 -100 7] true <nil>
}

func ExampleWithMode() {
	d := NewDecoder(NewReadSeekerSource(exampleStream()), WithMode(ModeContinuous))
	if err := d.Open(); err != nil {
		log.Fatal(err)
	}

	samples := make([]int16, 8)
	n := d.DecodeToI16(samples, 8)
	fmt.Println(n, samples)
	// Output: 8 [100 -100 7 100 -100 7 100 -100]
}

func ExampleSourceFuncs() {
	r := exampleStream()

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
		log.Fatal(err)
	}

	fmt.Println(d.Chunks())
	// Output: [fmt  data]
}
