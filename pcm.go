package wav

// pcmFormat is uncompressed linear PCM (format tag 1).
type pcmFormat struct{}

func (pcmFormat) name() string { return "PCM" }

func (pcmFormat) readFields(w *chunkWalker, f *FmtChunk) (int, error) {
	bits, err := w.readU16("bits per sample")
	if err != nil {
		return 0, err
	}

	f.BitsPerSample = bits

	frameSize := int(f.BlockAlign)
	if frameSize > MaxFrameSize {
		return 0, structuralError(errFrameSize, "block align %d exceeds %d", frameSize, MaxFrameSize)
	}

	if frameSize < int(f.NumChannels) {
		return 0, structuralError(errFrameSize, "block align %d holds less than %d channels", frameSize, f.NumChannels)
	}

	return frameSize, nil
}

// nextFrame moves to the next frame, entering as many sub-chunks as needed.
// Silent frames leave the frame buffer as the last real frame wrote it. A data
// chunk cut off between two frames ends the stream cleanly.
func (pcmFormat) nextFrame(d *Decoder) error {
	for d.remainingFrames == 0 {
		err := d.enterSubchunk()
		if err != nil {
			return err
		}
	}

	if !d.silence {
		err := d.walker.readBoundary(d.frame[:d.frameSize], "frame")
		if err != nil {
			return err
		}
	}

	d.remainingFrames--

	return nil
}
