package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJobWaitBlocksUntilSignalDone(t *testing.T) {
	j := newJob(nil, nil, nil, nil)

	done := make(chan struct{})
	go func() {
		j.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before signalDone was called")
	case <-time.After(20 * time.Millisecond):
	}

	j.signalDone()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after signalDone")
	}
}

func TestJobReleaseCallsBothCallbacksExactlyOnce(t *testing.T) {
	inCalls, outCalls := 0, 0
	j := newJob(nil, nil, func() { inCalls++ }, func() { outCalls++ })

	j.Release()

	require.Equal(t, 1, inCalls)
	require.Equal(t, 1, outCalls)
}

func TestJobReleaseToleratesNilCallbacks(t *testing.T) {
	j := newJob(nil, nil, nil, nil)
	require.NotPanics(t, j.Release)
}
