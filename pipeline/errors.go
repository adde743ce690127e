package pipeline

import "errors"

// Sentinel errors the driver can return. When one stream operation hits
// several failures, the driver returns the first one it observes. Codec-level init, compress, and
// bad-data failures are declared in the codec package (codec.ErrCodecInit,
// codec.ErrCompressFailure, codec.ErrBadData) and propagate through
// Job.err unchanged — this package only declares the errors that
// originate above the codec boundary.
var (
	// ErrSourceIO reports a read failure from the Source.
	ErrSourceIO = errors.New("pipeline: source read failed")
	// ErrSinkIO reports a write failure to the Sink.
	ErrSinkIO = errors.New("pipeline: sink write failed")
	// ErrTruncatedFrame reports that the source produced fewer bytes than a
	// frame's length prefix declared.
	ErrTruncatedFrame = errors.New("pipeline: truncated frame")
	// ErrOutOfMemory reports a buffer or job allocation failure, including a
	// worker pool refusing to accept a spawn.
	ErrOutOfMemory = errors.New("pipeline: allocation failed")
)
