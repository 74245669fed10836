package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fembalance/pkg/errors"
)

type recordingTracker struct {
	captured []error
	messages []string
}

func (r *recordingTracker) CaptureError(ctx context.Context, err error, tags map[string]string) error {
	r.captured = append(r.captured, err)
	return nil
}

func (r *recordingTracker) CaptureMessage(ctx context.Context, message string, level errors.Level, tags map[string]string) error {
	r.messages = append(r.messages, message)
	return nil
}

func (r *recordingTracker) Flush(ctx context.Context) error {
	return nil
}

func newTrackedLogger(tracker errors.Tracker) *Logger {
	return &Logger{
		SugaredLogger: zap.NewNop().Sugar(),
		errorTracker:  tracker,
	}
}

func TestError_CapturesToTracker(t *testing.T) {
	tracker := &recordingTracker{}
	log := newTrackedLogger(tracker)

	log.Error("model output invalid")

	require.Len(t, tracker.captured, 1)
	assert.True(t, errors.Is(tracker.captured[0], errors.ErrInternal))
	assert.Contains(t, tracker.captured[0].Error(), "model output invalid")
}

func TestErrorf_CapturesFormattedError(t *testing.T) {
	tracker := &recordingTracker{}
	log := newTrackedLogger(tracker)

	log.Errorf("load failed for %s", "cycle")

	require.Len(t, tracker.captured, 1)
	assert.Contains(t, tracker.captured[0].Error(), "load failed for cycle")
}

func TestErrorw_CapturesToTracker(t *testing.T) {
	tracker := &recordingTracker{}
	log := newTrackedLogger(tracker)

	log.Errorw("Cycle model produced invalid output", "details", []string{"confidence out of range"})

	require.Len(t, tracker.captured, 1)
	assert.True(t, errors.Is(tracker.captured[0], errors.ErrInternal))
	assert.Contains(t, tracker.captured[0].Error(), "Cycle model produced invalid output")
}

func TestErrorWithContext_ForwardsTags(t *testing.T) {
	tracker := &recordingTracker{}
	log := newTrackedLogger(tracker)

	err := errors.Wrap(errors.ErrPredictionFailed, "nan in features")
	log.ErrorWithContext(context.Background(), err, map[string]string{"model": "pcos"})

	require.Len(t, tracker.captured, 1)
	assert.Equal(t, err, tracker.captured[0])
}

func TestWith_PropagatesTracker(t *testing.T) {
	tracker := &recordingTracker{}
	log := newTrackedLogger(tracker).With("component", "test")

	log.Errorw("child logger error")

	require.Len(t, tracker.captured, 1)
}

func TestError_NoTrackerDoesNotPanic(t *testing.T) {
	log := newTrackedLogger(nil)

	assert.NotPanics(t, func() {
		log.Error("untracked")
		log.Errorf("untracked %d", 1)
		log.Errorw("untracked", "k", "v")
	})
}
