package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("not a WAV file")
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
	ErrWriterClosed          = errors.New("writer already closed")
	ErrNotBlockAligned       = errors.New("write length not block aligned")
)
