package wav

// FormatChunk returns a copy of the parsed fmt chunk, if available.
func (d *Decoder) FormatChunk() *FmtChunk {
	if d == nil || d.FmtChunk == nil {
		return nil
	}

	return d.FmtChunk.Clone()
}

// Chunks returns a copy of the chunk headers met while opening the stream,
// from the fmt chunk up to the first data or LIST chunk.
func (d *Decoder) Chunks() []ChunkHeader {
	if d == nil {
		return nil
	}

	return cloneChunkHeaders(d.headerChunks)
}
