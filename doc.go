// Package wav streams PCM frames out of RIFF/WAVE files.
//
// The Decoder reads through an injected ByteSource (position query, absolute
// seek, bounded read) and never owns the underlying file. It accepts plain
// files with a single data chunk as well as wave lists, where a LIST chunk of
// type "wavl" alternates data chunks with slnt chunks declaring runs of
// silent frames.
//
// Every frame is normalized to interleaved int16 samples:
//
//   - 8-bit unsigned samples are centered and shifted left by 8 bits, so 255
//     becomes 32512.
//   - wider samples keep the two most significant bytes of each channel slot;
//     lower bytes are dropped without rounding.
//
// Silent frames repeat the last frame read from a data chunk (zero if none
// was read yet) rather than emitting digital silence.
//
// Only PCM (format tag 1) with at most MaxChannels channels and frames of at
// most MaxFrameSize bytes is supported. The buffer APIs from
// github.com/go-audio/audio (PCMBuffer, PCMFloat32Buffer, FullPCMBuffer) are
// thin layers over DecodeToI16.
package wav
