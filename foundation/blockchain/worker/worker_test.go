package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/peer"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/ardanlabs/powchain/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// fetcher serves the same chain for every peer.
type fetcher []database.Block

func (f fetcher) FetchChain(ctx context.Context, pr peer.Peer) ([]database.Block, error) {
	return f, nil
}

func newState(t *testing.T, f fetcher, autoMine bool) *state.State {
	t.Helper()

	gen := genesis.Default()
	gen.Timestamp = 1700000000
	gen.Difficulty = 1

	st, err := state.New(state.Config{
		NodeID:    "node1",
		Host:      "localhost:9080",
		Genesis:   gen,
		Fetcher:   f,
		AutoMine:  autoMine,
		EvHandler: t.Logf,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}

	return st
}

// waitFor polls until the chain reaches the length or the deadline passes.
func waitFor(st *state.State, length int) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if st.ChainLength() >= length {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// =============================================================================

func TestMining(t *testing.T) {
	t.Log("Given the need to mine in the background.")
	{
		t.Logf("\tTest 0:\tWhen transactions arrive with auto mining on.")
		{
			st := newState(t, nil, true)
			if err := worker.Run(st, "", t.Logf); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to start the worker: %v", failed, err)
			}
			defer st.Shutdown()

			tx, _ := database.NewTx("alice", "bob", "5")
			if _, err := st.EnqueueTransaction(tx); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to enqueue a transaction: %v", failed, err)
			}

			if !waitFor(st, 2) {
				t.Fatalf("\t%s\tTest 0:\tShould mine a block.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould mine a block.", success)

			if !st.IsValid(st.RetrieveChain()) {
				t.Fatalf("\t%s\tTest 0:\tShould produce a valid chain.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould produce a valid chain.", success)
		}

		t.Logf("\tTest 1:\tWhen the pool is empty.")
		{
			st := newState(t, nil, false)
			if err := worker.Run(st, "", t.Logf); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to start the worker: %v", failed, err)
			}

			st.Worker.SignalStartMining()
			time.Sleep(100 * time.Millisecond)
			st.Shutdown()

			if n := st.ChainLength(); n != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould not mine an empty pool, got length %d.", failed, n)
			}
			t.Logf("\t%s\tTest 1:\tShould not mine an empty pool.", success)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Log("Given the need to resolve conflicts in the background.")
	{
		t.Logf("\tTest 0:\tWhen a peer holds a longer chain.")
		{
			donor := newState(t, nil, false)
			for range 2 {
				if _, err := donor.MineNewBlock(context.Background()); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
				}
			}

			st := newState(t, fetcher(donor.RetrieveChain()), false)
			st.RegisterNodes("node2:9080")

			if err := worker.Run(st, "@every 1h", t.Logf); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to start the worker: %v", failed, err)
			}
			defer st.Shutdown()

			st.Worker.SignalResolve()

			if !waitFor(st, 3) {
				t.Fatalf("\t%s\tTest 0:\tShould adopt the peer chain.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould adopt the peer chain.", success)
		}

		t.Logf("\tTest 1:\tWhen the schedule is invalid.")
		{
			st := newState(t, nil, false)
			if err := worker.Run(st, "every now and then", t.Logf); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject the schedule.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the schedule.", success)
		}
	}
}
