package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/spf13/cobra"
)

func newToAIFFCmd(a *app) *cobra.Command {
	var (
		out      string
		bitDepth int
	)

	cmd := &cobra.Command{
		Use:   "toaiff <file>",
		Short: "Convert a wav file into an AIFF file",
		Long: `Convert a wav file into an AIFF file. Wave lists are flattened, with
silent runs written out as repeated frames. The output is stored next to the
source unless --out is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = aiffPath(args[0])
			}

			return a.runToAIFF(args[0], out, bitDepth)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output AIFF path")
	cmd.Flags().IntVar(&bitDepth, "bits", 16, "Output bit depth: 16, 24 or 32")

	return cmd
}

func aiffPath(sourcePath string) string {
	return sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"
}

func (a *app) runToAIFF(path, outPath string, bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	dec, closeDec, err := a.openDecoder(path)
	if err != nil {
		return err
	}
	defer closeDec()

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile, int(dec.SampleRate), bitDepth, int(dec.NumChans))

	format := dec.Format()
	buf := &audio.Float32Buffer{Data: make([]float32, 4096*format.NumChannels), Format: format}

	var samples int

	// a decode error is sticky and reported by reportStop once the encoder
	// holds every frame decoded before it
	for {
		num, decErr := dec.PCMFloat32Buffer(buf)
		if num > 0 {
			samples += num

			err = encoder.Write(float32ToIntBuffer(buf.Data[:num], format, bitDepth))
			if err != nil {
				return err
			}
		}

		if decErr != nil || num < len(buf.Data) {
			break
		}
	}

	if err := encoder.Close(); err != nil {
		return err
	}

	if err := a.reportStop(dec); err != nil {
		return err
	}

	frames := samples / format.NumChannels
	a.logger.Info("Wav file converted",
		"output_file", outPath,
		"frames", frames,
		"duration", dec.FramesDuration(frames))

	fmt.Fprintf(a.out, "Wav file converted to %s\n", outPath)

	return nil
}

func float32ToIntBuffer(data []float32, format *audio.Format, bitDepth int) *audio.IntBuffer {
	intBuf := &audio.IntBuffer{
		Format:         format,
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(data)),
	}
	for i, v := range data {
		intBuf.Data[i] = float32ToPCMInt(v, bitDepth)
	}

	return intBuf
}

// float32ToPCMInt scales a sample in [-1, 1] to a signed integer of bitDepth
// bits. Out of range values are clamped.
func float32ToPCMInt(value float32, bitDepth int) int {
	value = clampFloat32(value, -1, 1)

	switch bitDepth {
	case 16:
		return int(clampScaledPCM(value, 32768.0, 32767))
	case 24:
		return int(clampScaledPCM(value, 8388608.0, 8388607))
	case 32:
		return int(clampScaledPCM(value, 2147483648.0, 2147483647))
	default:
		return 0
	}
}

func clampScaledPCM(value float32, scale float64, max int64) int32 {
	sample := min(int64(math.Round(float64(value)*scale)), max)

	min := int64(-scale)
	if sample < min {
		sample = min
	}

	return int32(sample)
}

func clampFloat32(value, min, max float32) float32 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}
