package status

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"steam-ledger/feature/games/models"
	steamsync "steam-ledger/feature/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// blockingRunner runs until release is closed.
type blockingRunner struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
	result  *steamsync.Result
	err     error
}

func newBlockingRunner(res *steamsync.Result, err error) *blockingRunner {
	return &blockingRunner{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		result:  res,
		err:     err,
	}
}

func (r *blockingRunner) Run(ctx context.Context) (*steamsync.Result, error) {
	r.calls.Add(1)
	r.started <- struct{}{}
	select {
	case <-r.release:
	case <-ctx.Done():
		return r.result, ctx.Err()
	}
	return r.result, r.err
}

type staticCounter struct {
	counts map[string]int64
	err    error
}

func (c staticCounter) Counts(context.Context) (map[string]int64, error) {
	return c.counts, c.err
}

func sampleResult() *steamsync.Result {
	return &steamsync.Result{
		RunID:    "run-1",
		Started:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Finished: time.Date(2026, 1, 2, 3, 5, 5, 0, time.UTC),
		Counters: steamsync.Counters{CatalogInserted: 3},
		Events: []models.SyncEvent{
			models.Released(654321, "Paint Drying Tycoon 2"),
		},
	}
}

func TestRunNow_StoresResultAndCallsHooks(t *testing.T) {
	runner := newBlockingRunner(sampleResult(), nil)
	close(runner.release)

	var hooked atomic.Int32
	svc := NewService(runner, nil, 0, zap.NewNop(), func(_ context.Context, res *steamsync.Result) {
		assert.Equal(t, "run-1", res.RunID)
		hooked.Add(1)
	})

	res, err := svc.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, int32(1), hooked.Load())

	st := svc.Status(context.Background())
	assert.False(t, st.Running)
	assert.Equal(t, 1, st.Runs)
	require.NotNil(t, st.Last)
	assert.Equal(t, 1, st.Last.EventCount)
	assert.Nil(t, st.Tables)
}

func TestRunNow_BusyWhileRunning(t *testing.T) {
	runner := newBlockingRunner(sampleResult(), nil)
	svc := NewService(runner, nil, 0, zap.NewNop())

	require.True(t, svc.Trigger())
	<-runner.started

	_, err := svc.RunNow(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.False(t, svc.Trigger())
	assert.True(t, svc.Status(context.Background()).Running)

	close(runner.release)
	assert.Eventually(t, func() bool {
		return svc.Status(context.Background()).Runs == 1 && !svc.Status(context.Background()).Running
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestClose_CancelsBackgroundPass(t *testing.T) {
	runner := newBlockingRunner(sampleResult(), nil)
	var hookErr error
	svc := NewService(runner, nil, 0, zap.NewNop(), func(ctx context.Context, _ *steamsync.Result) {
		hookErr = ctx.Err()
	})

	require.True(t, svc.Trigger())
	<-runner.started

	done := make(chan struct{})
	go func() {
		svc.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not wait for the background pass to stop")
	}

	st := svc.Status(context.Background())
	assert.False(t, st.Running)
	assert.Equal(t, 1, st.Runs)
	assert.ErrorIs(t, hookErr, context.Canceled)
	assert.False(t, svc.Trigger(), "closed service starts no pass")
}

func TestRunNow_FailedPassIsKept(t *testing.T) {
	res := sampleResult()
	res.FailedStep = steamsync.StepOwnership
	res.Error = "boom"
	runner := newBlockingRunner(res, errors.New("boom"))
	close(runner.release)

	var hooked atomic.Int32
	svc := NewService(runner, nil, 0, zap.NewNop(), func(context.Context, *steamsync.Result) { hooked.Add(1) })

	_, err := svc.RunNow(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), hooked.Load())

	st := svc.Status(context.Background())
	require.NotNil(t, st.Last)
	assert.Equal(t, steamsync.StepOwnership, st.Last.FailedStep)
}

func TestRunNow_Timeout(t *testing.T) {
	runner := newBlockingRunner(sampleResult(), nil)
	svc := NewService(runner, nil, 20*time.Millisecond, zap.NewNop())

	_, err := svc.RunNow(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSeed(t *testing.T) {
	svc := NewService(newBlockingRunner(nil, nil), nil, 0, zap.NewNop())
	assert.Empty(t, svc.Events())

	svc.Seed(sampleResult())
	other := sampleResult()
	other.RunID = "run-2"
	svc.Seed(other)

	st := svc.Status(context.Background())
	require.NotNil(t, st.Last)
	assert.Equal(t, "run-1", st.Last.RunID)
	assert.Equal(t, 0, st.Runs)
	assert.Len(t, svc.Events(), 1)
}

func TestStatus_Tables(t *testing.T) {
	svc := NewService(newBlockingRunner(nil, nil), staticCounter{counts: map[string]int64{"game_catalog": 4}}, 0, zap.NewNop())
	assert.Equal(t, int64(4), svc.Status(context.Background()).Tables["game_catalog"])

	failing := NewService(newBlockingRunner(nil, nil), staticCounter{err: errors.New("closed")}, 0, zap.NewNop())
	assert.Nil(t, failing.Status(context.Background()).Tables)
}
