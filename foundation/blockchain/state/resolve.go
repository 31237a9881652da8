package state

import (
	"context"

	"github.com/ardanlabs/powchain/foundation/blockchain/consensus"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// ResolveConflicts asks every known peer for its chain and replaces the local
// chain with the longest valid one when it is strictly longer. Peers are
// contacted without holding the lock. The pool is left untouched.
func (s *State) ResolveConflicts(ctx context.Context) consensus.Outcome {
	local := s.RetrieveChain()
	peers := s.RetrieveKnownPeers()

	out := s.resolver.Resolve(ctx, local, peers)
	if !out.Replaced {
		return out
	}

	if !s.replaceChain(out.Chain) {
		s.evHandler("state: ResolveConflicts: local chain grew during resolution: kept")
		out.Replaced = false
		out.Chain = nil
		return out
	}

	s.evHandler("state: ResolveConflicts: chain replaced: peer[%s]: length[%d]", out.Peer, len(out.Chain))

	// Any proof being searched for is now against a stale tail.
	if s.Worker != nil {
		s.Worker.SignalCancelMining()
	}

	return out
}

// replaceChain swaps in the chain if it is still strictly longer than the
// local chain.
func (s *State) replaceChain(chain []database.Block) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(chain) <= len(s.chain) {
		return false
	}

	s.chain = make([]database.Block, len(chain))
	copy(s.chain, chain)

	return true
}
