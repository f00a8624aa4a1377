package flow

import (
	"math/rand"
	"sync"
	"time"
)

// AnalysisPhases is the ordered phase list shown while an analysis runs.
// Configuration data, not logic; the presenter only indexes into it.
var AnalysisPhases = []string{
	"Loading latest Jeonnam vlog trend data...",
	"Matching your style against Yeosu, Suncheon, Mokpo and Damyang...",
	"Filtering AI vlog mention frequency per spot...",
	"Computing travel times and the optimal daily path...",
	"Mapping alternative spots and themed hotplaces...",
	"Writing your personalised Jeonnam travel report...",
}

const (
	tickInterval = 150 * time.Millisecond
	settleDelay  = 400 * time.Millisecond
	maxIncrement = 15.0
	rollingLogN  = 3
)

// ProgressPresenter produces a monotonically non-decreasing progress value in
// [0,100] on a fixed tick, decoupled from real completion latency. Progress
// is capped at 99 until SetDataReady is called; once data is ready the next
// tick forces 100 and, after a short settle delay, the finish callback fires
// exactly once per cycle. If data never becomes ready, progress holds at 99
// indefinitely: liveness is tied to real completion and there is deliberately
// no timeout path.
type ProgressPresenter struct {
	mu        sync.Mutex
	progress  float64
	phases    []string
	phaseIdx  int
	logs      []string
	dataReady bool
	finished  bool

	onFinish func()
	interval time.Duration
	settle   time.Duration
	randFn   func() float64

	stop     chan struct{}
	stopOnce sync.Once
}

func NewProgressPresenter(phases []string, onFinish func()) *ProgressPresenter {
	return &ProgressPresenter{
		phases:   phases,
		onFinish: onFinish,
		interval: tickInterval,
		settle:   settleDelay,
		randFn:   rand.Float64,
		stop:     make(chan struct{}),
	}
}

// Start launches the tick loop. The loop exits after the finish signal fires
// or when Stop is called.
func (p *ProgressPresenter) Start() {
	go p.loop()
}

// Stop cancels the tick loop without firing the finish signal. Safe to call
// more than once.
func (p *ProgressPresenter) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

// SetDataReady marks the real work as complete; the next tick fast-forwards
// progress to 100.
func (p *ProgressPresenter) SetDataReady() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dataReady = true
}

// Snapshot returns the current progress percentage, the active phase
// description and the rolling log.
func (p *ProgressPresenter) Snapshot() (progress int, phase string, logs []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.logs))
	copy(out, p.logs)
	return int(p.progress), p.phases[p.phaseIdx], out
}

func (p *ProgressPresenter) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			if !p.tick() {
				continue
			}
			select {
			case <-p.stop:
				return
			case <-time.After(p.settle):
			}
			p.onFinish()
			return
		}
	}
}

// tick advances the progress value once and reports whether 100 was reached.
func (p *ProgressPresenter) tick() (done bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return false
	}
	if p.dataReady {
		p.progress = 100
		p.finished = true
		p.advancePhase()
		return true
	}
	if p.progress >= 99 {
		return false
	}

	next := p.progress + p.randFn()*maxIncrement
	if next > 99 {
		next = 99
	}
	p.progress = next
	p.advancePhase()
	return false
}

// advancePhase maps progress onto the phase list and appends newly reached
// phases to the rolling log. Caller holds the lock.
func (p *ProgressPresenter) advancePhase() {
	next := int(p.progress / 100 * float64(len(p.phases)))
	if next > len(p.phases)-1 {
		next = len(p.phases) - 1
	}
	if next == p.phaseIdx && len(p.logs) > 0 {
		return
	}
	p.phaseIdx = next
	p.logs = append(p.logs, p.phases[next])
	if len(p.logs) > rollingLogN {
		p.logs = p.logs[len(p.logs)-rollingLogN:]
	}
}
