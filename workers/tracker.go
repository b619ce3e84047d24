package workers

import (
	"os"
	"sync"
	"time"
)

// pathState is the lifecycle of one intake file path. A path only triggers
// processing on the Debouncing->Processing edge, so however many filesystem
// notifications one physical write produces, the file is handled once.
type pathState int

const (
	stateIdle pathState = iota
	stateDebouncing
	stateProcessing
	stateCoolingDown
)

// PathTracker debounces and deduplicates filesystem events per absolute path.
// A notification on an idle path starts a debounce loop that waits for the
// file's size to hold still for the quiet period before handing it to the
// process callback; notifications on a non-idle path are absorbed. After
// processing the path stays blocked for the cool-down window to soak up
// trailing notifications for the same write.
type PathTracker struct {
	mu     sync.Mutex
	states map[string]pathState
	wg     sync.WaitGroup

	quietPeriod  time.Duration
	pollInterval time.Duration
	cooldown     time.Duration

	process func(path string)
}

func NewPathTracker(quietPeriod, pollInterval, cooldown time.Duration, process func(path string)) *PathTracker {
	return &PathTracker{
		states:       make(map[string]pathState),
		quietPeriod:  quietPeriod,
		pollInterval: pollInterval,
		cooldown:     cooldown,
		process:      process,
	}
}

// Notify reports a filesystem event for path. Safe for concurrent use.
func (t *PathTracker) Notify(path string) {
	t.mu.Lock()
	if t.states[path] != stateIdle {
		t.mu.Unlock()
		return
	}
	t.states[path] = stateDebouncing
	t.mu.Unlock()

	t.wg.Add(1)
	go t.debounce(path)
}

// debounce polls the file's size until it has been stable for the quiet
// period, then runs the process callback and enters cool-down.
func (t *PathTracker) debounce(path string) {
	defer t.wg.Done()

	lastSize := int64(-1)
	stableFor := time.Duration(0)

	for stableFor < t.quietPeriod {
		time.Sleep(t.pollInterval)

		info, err := os.Stat(path)
		if err != nil {
			// vanished mid-write (moved or deleted); forget it
			t.setState(path, stateIdle)
			return
		}
		if info.Size() == lastSize {
			stableFor += t.pollInterval
		} else {
			lastSize = info.Size()
			stableFor = 0
		}
	}

	t.setState(path, stateProcessing)
	t.process(path)
	t.setState(path, stateCoolingDown)

	time.AfterFunc(t.cooldown, func() {
		t.mu.Lock()
		delete(t.states, path)
		t.mu.Unlock()
	})
}

func (t *PathTracker) setState(path string, s pathState) {
	t.mu.Lock()
	if s == stateIdle {
		delete(t.states, path)
	} else {
		t.states[path] = s
	}
	t.mu.Unlock()
}

// Wait blocks until all in-flight debounce loops have finished. Used by
// shutdown and tests; cool-down timers are not waited on.
func (t *PathTracker) Wait() {
	t.wg.Wait()
}
