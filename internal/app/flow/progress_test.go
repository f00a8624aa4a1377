package flow

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPresenter(onFinish func()) *ProgressPresenter {
	p := NewProgressPresenter(AnalysisPhases, onFinish)
	p.interval = time.Millisecond
	p.settle = time.Millisecond
	p.randFn = func() float64 { return 0.5 } // fixed 7.5 increment per tick
	return p
}

func TestProgressIsMonotonicAndCappedAt99(t *testing.T) {
	p := newTestPresenter(func() {})

	prev := 0
	for i := 0; i < 50; i++ {
		p.tick()
		progress, _, _ := p.Snapshot()
		assert.GreaterOrEqual(t, progress, prev)
		assert.LessOrEqual(t, progress, 99)
		prev = progress
	}
	progress, _, _ := p.Snapshot()
	assert.Equal(t, 99, progress, "progress holds at 99 while data is not ready")
}

func TestDataReadyForcesHundred(t *testing.T) {
	p := newTestPresenter(func() {})

	p.tick()
	p.tick()
	progress, _, _ := p.Snapshot()
	require.Less(t, progress, 99)

	p.SetDataReady()
	done := p.tick()
	assert.True(t, done)

	progress, phase, _ := p.Snapshot()
	assert.Equal(t, 100, progress)
	assert.Equal(t, AnalysisPhases[len(AnalysisPhases)-1], phase)
}

func TestPhaseLogKeepsLastThreeEntriesInOrder(t *testing.T) {
	p := newTestPresenter(func() {})

	for i := 0; i < 50; i++ {
		p.tick()
	}
	p.SetDataReady()
	p.tick()

	_, _, logs := p.Snapshot()
	require.Len(t, logs, 3)
	assert.Equal(t, AnalysisPhases[len(AnalysisPhases)-3:], logs)
}

func TestFinishFiresExactlyOnce(t *testing.T) {
	var finishes int32
	p := newTestPresenter(func() { atomic.AddInt32(&finishes, 1) })
	p.SetDataReady()
	p.Start()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&finishes) == 1
	}, time.Second, 5*time.Millisecond)

	// Give the loop time to misbehave if it were going to fire again.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&finishes))
}

func TestFinishNeverFiresWithoutDataReady(t *testing.T) {
	var finishes int32
	p := newTestPresenter(func() { atomic.AddInt32(&finishes, 1) })
	p.Start()
	defer p.Stop()

	time.Sleep(50 * time.Millisecond)
	progress, _, _ := p.Snapshot()
	assert.Equal(t, 99, progress)
	assert.Equal(t, int32(0), atomic.LoadInt32(&finishes))
}

func TestStopPreventsFinish(t *testing.T) {
	var finishes int32
	p := newTestPresenter(func() { atomic.AddInt32(&finishes, 1) })
	p.Start()
	p.Stop()
	p.Stop() // idempotent

	p.SetDataReady()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&finishes))
}
