package wav

// ChunkHeader describes a chunk met while scanning the container header.
type ChunkHeader struct {
	ID [4]byte
	// Size is the declared payload size, without the pad byte. It stays zero
	// for a leading data chunk, whose size is only read once decoding starts.
	Size uint32
	// Offset is the absolute offset of the chunk header.
	Offset int64
}

func (c ChunkHeader) String() string {
	return string(c.ID[:])
}

func cloneChunkHeaders(chunks []ChunkHeader) []ChunkHeader {
	if len(chunks) == 0 {
		return nil
	}

	return append([]ChunkHeader(nil), chunks...)
}
