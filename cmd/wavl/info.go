package main

import (
	"fmt"

	wav "github.com/cwbudde/wavl"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	var count bool

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print the format and chunk layout of a wav file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dec, closeDec, err := a.openDecoder(args[0])
			if err != nil {
				return err
			}
			defer closeDec()

			printInfo(a, dec)

			if !count {
				return nil
			}

			frames := countFrames(dec)
			fmt.Fprintf(a.out, "Frames: %d\n", frames)
			fmt.Fprintf(a.out, "Duration: %s\n", dec.FramesDuration(frames))

			return a.reportStop(dec)
		},
	}

	cmd.Flags().BoolVar(&count, "count", false, "Decode the whole file to count frames")

	return cmd
}

func printInfo(a *app, dec *wav.Decoder) {
	fmt.Fprintln(a.out, dec)
	fmt.Fprintf(a.out, "Byte rate: %d\n", dec.AvgBytesPerSec)
	fmt.Fprintf(a.out, "RIFF size: %d\n", dec.RiffSize)

	for _, ch := range dec.Chunks() {
		fmt.Fprintf(a.out, "Chunk %q at %d, %d bytes\n", ch.ID[:], ch.Offset, ch.Size)
	}
}

func countFrames(dec *wav.Decoder) int {
	buf := make([]int16, 1024*int(dec.NumChans))

	var total int

	for {
		n := dec.DecodeToI16(buf, 1024)
		total += n

		if n < 1024 {
			return total
		}
	}
}
