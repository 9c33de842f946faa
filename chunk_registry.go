package wav

import "github.com/go-audio/riff"

// subchunkHandler starts one sub-chunk of the sample-bearing sequence once
// its id and size have been read. It returns how many frames the sub-chunk
// yields and whether they are silent.
type subchunkHandler interface {
	CanHandle(chunkID [4]byte) bool
	Begin(d *Decoder, size uint32) (frames uint32, silent bool, err error)
}

// subchunkRegistry resolves sub-chunk ids to handlers.
type subchunkRegistry struct {
	handlers []subchunkHandler
}

func newDefaultSubchunkRegistry() *subchunkRegistry {
	return &subchunkRegistry{
		handlers: []subchunkHandler{
			&dataSubchunkHandler{},
			&slntSubchunkHandler{},
		},
	}
}

// Lookup returns the first handler for id. An id nobody handles ends the
// walk with a structural error.
func (r *subchunkRegistry) Lookup(id [4]byte) (subchunkHandler, error) {
	for _, handler := range r.handlers {
		if handler.CanHandle(id) {
			return handler, nil
		}
	}

	return nil, structuralError(riff.ErrUnexpectedData, "sub-chunk id %q", id[:])
}

type dataSubchunkHandler struct{}

func (h *dataSubchunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == riff.DataFormatID
}

func (h *dataSubchunkHandler) Begin(d *Decoder, size uint32) (uint32, bool, error) {
	return size / uint32(d.frameSize), false, nil
}

type slntSubchunkHandler struct{}

func (h *slntSubchunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDSlnt
}

// Begin reads the silent frame count, which is the whole slnt payload.
func (h *slntSubchunkHandler) Begin(d *Decoder, _ uint32) (uint32, bool, error) {
	frames, err := d.walker.readU32("silent frame count")
	if err != nil {
		return 0, true, err
	}

	return frames, true, nil
}
