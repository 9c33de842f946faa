package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	wav "github.com/cwbudde/wavl"
	"github.com/spf13/cobra"
)

// app holds what every subcommand shares.
type app struct {
	out     io.Writer
	logger  *slog.Logger
	verbose bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:   "wavl",
		Short: "Inspect and decode wav files, including wave lists",
		Long: `wavl - a streaming decoder for RIFF/WAVE files.

Plain data chunks and LIST/wavl wave lists (alternating data and slnt
sub-chunks) are decoded frame by frame to interleaved 16-bit samples.

Commands:
  - info: print the format and chunk layout of a file
  - decode: write the decoded samples as raw s16le or as a 16-bit wav
  - toaiff: convert a file into an AIFF file`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}

			a.logger = slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInfoCmd(a),
		newDecodeCmd(a),
		newToAIFFCmd(a),
	)

	return rootCmd
}

// openDecoder opens path and the decoder reading from it. The returned
// function closes both.
func (a *app) openDecoder(path string, opts ...wav.Option) (*wav.Decoder, func(), error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]wav.Option{wav.WithLogger(a.logger)}, opts...)
	dec := wav.NewDecoder(wav.NewReadSeekerSource(file), opts...)

	err = dec.Open()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return dec, func() {
		dec.Close()
		file.Close()
	}, nil
}

// reportStop logs why decoding ended when it was not a clean end of stream.
// A trailing chunk after the samples is common and only worth a warning.
func (a *app) reportStop(dec *wav.Decoder) error {
	err := dec.Err()
	if err == nil {
		return nil
	}

	if errors.Is(err, wav.ErrStructural) {
		a.logger.Warn("Decoding stopped at an unexpected chunk", "error", err)
		return nil
	}

	return err
}
