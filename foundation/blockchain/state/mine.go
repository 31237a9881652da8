package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/pow"
)

// ErrTailMoved is returned when the tail changed while a proof was being
// searched for. The proof found is for a block that is no longer the tail.
var ErrTailMoved = errors.New("tail moved during proof search")

// MineNewBlock searches for a proof against the current tail and seals the
// pool into a new block with a reward transaction for this node. The search
// runs without holding the lock so the node stays responsive.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	tail, err := s.Tail()
	if err != nil {
		return database.Block{}, err
	}
	tailHash := tail.Hash()

	s.evHandler("state: MineNewBlock: MINING: find proof: lastProof[%d]: difficulty[%d]", tail.Proof, s.genesis.Difficulty)

	proof, err := pow.Search(ctx, s.genesis.Difficulty, tail.Proof, s.evHandler)
	if err != nil {
		return database.Block{}, fmt.Errorf("searching proof: %w", err)
	}

	s.evHandler("state: MineNewBlock: MINING: SOLVED: proof[%d]", proof)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.tail()
	if err != nil {
		return database.Block{}, err
	}

	// A block was sealed or the chain was replaced during the search.
	if current.Hash() != tailHash {
		return database.Block{}, ErrTailMoved
	}

	s.mempool.Add(database.NewRewardTx(s.nodeID, s.genesis.MiningReward))

	return s.appendBlock(proof, tailHash)
}
