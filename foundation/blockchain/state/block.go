package state

import (
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// AppendBlock seals the pool into a new block with the specified proof and
// appends it to the chain. When previousHash is empty the digest of the
// current tail is used. The pool is drained even if the caller discards the
// block.
func (s *State) AppendBlock(proof uint64, previousHash string) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendBlock(proof, previousHash)
}

// appendBlock performs the work of AppendBlock. The caller must hold the lock.
func (s *State) appendBlock(proof uint64, previousHash string) (database.Block, error) {
	tail, err := s.tail()
	if err != nil {
		return database.Block{}, err
	}

	if previousHash == "" {
		previousHash = tail.Hash()
	}

	block := database.NewBlock(tail, proof, previousHash, s.mempool.Drain())
	s.chain = append(s.chain, block)

	s.evHandler("state: AppendBlock: blk[%d]: prevBlk[%s]: numTrans[%d]", block.Index, block.PreviousHash, len(block.Transactions))

	return block, nil
}

// Tail returns the most recently appended block.
func (s *State) Tail() (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tail()
}

// tail returns the last block of the chain. The caller must hold the lock.
func (s *State) tail() (database.Block, error) {
	if len(s.chain) == 0 {
		return database.Block{}, database.ErrEmptyChain
	}

	return s.chain[len(s.chain)-1], nil
}

// RetrieveChain returns a copy of the chain.
func (s *State) RetrieveChain() []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	chain := make([]database.Block, len(s.chain))
	copy(chain, s.chain)

	return chain
}

// ChainLength returns the number of blocks in the chain.
func (s *State) ChainLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.chain)
}
