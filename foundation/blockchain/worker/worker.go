// Package worker implements background mining and periodic conflict
// resolution for the blockchain.
package worker

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/robfig/cron/v3"
)

// DefaultResolveSchedule is how often the node resolves conflicts with its
// peers when nothing else is configured.
const DefaultResolveSchedule = "@every 1m"

// =============================================================================

// Worker manages the POW workflows for the blockchain.
type Worker struct {
	state        *state.State
	wg           sync.WaitGroup
	cron         *cron.Cron
	shut         chan struct{}
	startMining  chan bool
	cancelMining chan bool
	resolve      chan bool
	evHandler    state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up all the background processes. The schedule is a cron expression for
// periodic conflict resolution; an empty schedule disables it.
func Run(st *state.State, schedule string, evHandler state.EventHandler) error {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	w := Worker{
		state:        st,
		cron:         cron.New(cron.WithSeconds()),
		shut:         make(chan struct{}),
		startMining:  make(chan bool, 1),
		cancelMining: make(chan bool, 1),
		resolve:      make(chan bool, 1),
		evHandler:    evHandler,
	}

	if schedule != "" {
		if _, err := w.cron.AddFunc(schedule, w.SignalResolve); err != nil {
			return fmt.Errorf("parsing resolve schedule %q: %w", schedule, err)
		}
	}

	// Register this worker with the state package.
	st.Worker = &w

	// Load the set of operations we need to run.
	operations := []func(){
		w.miningOperations,
		w.resolveOperations,
	}

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	// Start all the operational G's.
	for _, op := range operations {
		go func() {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}()
	}

	// Wait for the G's to report they are running.
	for range g {
		<-hasStarted
	}

	w.cron.Start()

	return nil
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutines performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: stop cron")
	<-w.cron.Stop().Done()

	w.evHandler("worker: shutdown: signal cancel mining")
	w.SignalCancelMining()

	w.evHandler("worker: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()
}

// SignalStartMining starts a mining operation. If there is already a signal
// pending in the channel, just return since a mining operation will start.
func (w *Worker) SignalStartMining() {
	select {
	case w.startMining <- true:
	default:
	}
	w.evHandler("worker: SignalStartMining: mining signaled")
}

// SignalCancelMining signals the G executing the runMiningOperation function
// to stop immediately.
func (w *Worker) SignalCancelMining() {
	select {
	case w.cancelMining <- true:
	default:
	}
	w.evHandler("worker: SignalCancelMining: MINING: CANCEL: signaled")
}

// SignalResolve starts a conflict resolution. A pending signal absorbs
// this one.
func (w *Worker) SignalResolve() {
	select {
	case w.resolve <- true:
	default:
	}
	w.evHandler("worker: SignalResolve: resolve signaled")
}

// =============================================================================

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
