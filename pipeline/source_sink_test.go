package pipeline

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type erroringReader struct{ err error }

func (r erroringReader) Read(p []byte) (int, error) { return 0, r.err }

type erroringWriter struct{ err error }

func (w erroringWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestReaderSourceReadSomeTranslatesCleanEOF(t *testing.T) {
	src := NewReaderSource(bytes.NewReader(nil))

	n, err := src.ReadSome(make([]byte, 8))
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestReaderSourceReadSomeReturnsFinalBytesBeforeEOF(t *testing.T) {
	src := NewReaderSource(bytes.NewReader([]byte("hi")))

	n, err := src.ReadSome(make([]byte, 8))
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestReaderSourceReadSomeWrapsOtherErrors(t *testing.T) {
	src := NewReaderSource(erroringReader{err: errors.New("disk yanked")})

	_, err := src.ReadSome(make([]byte, 8))
	require.ErrorIs(t, err, ErrSourceIO)
}

func TestReaderSourceReadFullSucceeds(t *testing.T) {
	src := NewReaderSource(bytes.NewReader([]byte("exact")))

	buf := make([]byte, 5)
	require.NoError(t, src.ReadFull(buf))
	require.Equal(t, "exact", string(buf))
}

func TestReaderSourceReadFullTruncated(t *testing.T) {
	src := NewReaderSource(bytes.NewReader([]byte("ab")))

	err := src.ReadFull(make([]byte, 5))
	require.ErrorIs(t, err, ErrTruncatedFrame)
}

func TestReaderSourceReadFullWrapsOtherErrors(t *testing.T) {
	src := NewReaderSource(erroringReader{err: errors.New("disk yanked")})

	err := src.ReadFull(make([]byte, 5))
	require.ErrorIs(t, err, ErrSourceIO)
}

func TestWriterSinkWritesFully(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	require.NoError(t, sink.Write([]byte("hello world")))
	require.Equal(t, "hello world", buf.String())
}

func TestWriterSinkWrapsWriteErrors(t *testing.T) {
	sink := NewWriterSink(erroringWriter{err: errors.New("no space left on device")})

	err := sink.Write([]byte("x"))
	require.ErrorIs(t, err, ErrSinkIO)
}

func TestWriterSinkHandlesPartialWrites(t *testing.T) {
	sink := NewWriterSink(oneByteWriter{})

	require.NoError(t, sink.Write([]byte("abc")))
}

// oneByteWriter accepts at most one byte per call, forcing
// writerSink's retry loop to run more than once.
type oneByteWriter struct{}

func (oneByteWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	return 1, nil
}

var _ io.Writer = oneByteWriter{}
