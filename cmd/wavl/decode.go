package main

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"

	wav "github.com/cwbudde/wavl"
	"github.com/spf13/cobra"
	ypwav "github.com/youpy/go-wav"
)

var (
	errUnboundedLoop = errors.New("--continuous needs --max-frames")
	errBufferFrames  = errors.New("--buffer-frames must be positive")
)

type decodeOptions struct {
	out          string
	continuous   bool
	maxFrames    int
	bufferFrames int
	asWav        bool
}

func newDecodeCmd(a *app) *cobra.Command {
	opts := decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a wav file to 16-bit samples",
		Long: `Decode a wav file to interleaved 16-bit little-endian samples.

Examples:
  # Raw samples on stdout
  wavl decode in.wav > in.raw

  # Loop a wave list three seconds long at 8kHz into a new wav file
  wavl decode in.wav --continuous --max-frames 24000 --wav --out loop.wav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDecode(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "-", "Output path, - for stdout")
	cmd.Flags().BoolVar(&opts.continuous, "continuous", false, "Loop over the sample chunks")
	cmd.Flags().IntVar(&opts.maxFrames, "max-frames", 0, "Stop after this many frames, 0 for no limit")
	cmd.Flags().IntVar(&opts.bufferFrames, "buffer-frames", 1024, "Frames decoded per call")
	cmd.Flags().BoolVar(&opts.asWav, "wav", false, "Write a 16-bit PCM wav file instead of raw samples")

	return cmd
}

func (a *app) runDecode(path string, opts decodeOptions) error {
	if opts.bufferFrames <= 0 {
		return errBufferFrames
	}

	if opts.continuous && opts.maxFrames <= 0 {
		return errUnboundedLoop
	}

	mode := wav.ModeSingle
	if opts.continuous {
		mode = wav.ModeContinuous
	}

	dec, closeDec, err := a.openDecoder(path, wav.WithMode(mode))
	if err != nil {
		return err
	}
	defer closeDec()

	a.logger.Info("Decoding", "input_file", path, "format", dec.String(), "mode", mode)

	var frames int

	err = a.writeOutput(opts, func(w io.Writer) error {
		if !opts.asWav {
			var err error
			frames, err = decodeFrames(dec, w, opts)

			return err
		}

		// the wav header needs the frame count up front
		var pcm bytes.Buffer

		n, err := decodeFrames(dec, &pcm, opts)
		if err != nil {
			return err
		}

		frames = n
		_, err = pcm.WriteTo(ypwav.NewWriter(w, uint32(frames), dec.NumChans, dec.SampleRate, 16))

		return err
	})
	if err != nil {
		return err
	}

	a.logger.Info("Decoding complete",
		"frames", frames,
		"duration", dec.FramesDuration(frames),
		"bytes", frames*int(dec.NumChans)*2)

	// frames decoded before a failure are already written out
	return a.reportStop(dec)
}

// decodeFrames decodes until the stream ends or maxFrames is reached and
// writes each buffer to w as s16le.
func decodeFrames(dec *wav.Decoder, w io.Writer, opts decodeOptions) (int, error) {
	channels := int(dec.NumChans)
	buf := make([]int16, opts.bufferFrames*channels)

	var total int

	for {
		want := opts.bufferFrames
		if opts.maxFrames > 0 {
			want = min(want, opts.maxFrames-total)
		}

		if want == 0 {
			return total, nil
		}

		n := dec.DecodeToI16(buf, want)
		if n > 0 {
			err := binary.Write(w, binary.LittleEndian, buf[:n*channels])
			if err != nil {
				return total, err
			}
		}

		total += n

		if n < want {
			return total, nil
		}
	}
}

func (a *app) writeOutput(opts decodeOptions, write func(io.Writer) error) error {
	if opts.out == "-" {
		bw := bufio.NewWriter(a.out)
		if err := write(bw); err != nil {
			return err
		}

		return bw.Flush()
	}

	file, err := os.Create(opts.out)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(file)
	if err := write(bw); err != nil {
		file.Close()
		return err
	}

	if err := bw.Flush(); err != nil {
		file.Close()
		return err
	}

	a.logger.Info("Output written", "output_file", opts.out)

	return file.Close()
}
