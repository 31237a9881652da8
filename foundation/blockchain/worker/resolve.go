package worker

import (
	"context"
)

// resolveOperations handles conflict resolution with the known peers.
func (w *Worker) resolveOperations() {
	w.evHandler("worker: resolveOperations: G started")
	defer w.evHandler("worker: resolveOperations: G completed")

	for {
		select {
		case <-w.resolve:
			if !w.isShutdown() {
				w.runResolveOperation()
			}
		case <-w.shut:
			w.evHandler("worker: resolveOperations: received shut signal")
			return
		}
	}
}

// runResolveOperation replaces the local chain if a peer holds a longer
// valid one.
func (w *Worker) runResolveOperation() {
	w.evHandler("worker: runResolveOperation: started")
	defer w.evHandler("worker: runResolveOperation: completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Abandon outstanding peer requests on shutdown.
	go func() {
		select {
		case <-w.shut:
			cancel()
		case <-ctx.Done():
		}
	}()

	out := w.state.ResolveConflicts(ctx)

	for _, res := range out.Failed() {
		w.evHandler("worker: runResolveOperation: peer[%s]: ERROR: %s", res.Peer, res.Err)
	}

	if out.Replaced {
		w.evHandler("worker: runResolveOperation: chain replaced: peer[%s]: length[%d]", out.Peer, len(out.Chain))
	}
}
