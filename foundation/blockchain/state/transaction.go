package state

import (
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// EnqueueTransaction adds the transaction to the pool and returns the index of
// the block it will be sealed into. A transaction missing a required field is
// rejected before the pool is touched. No balance or signature checks exist.
func (s *State) EnqueueTransaction(tx database.Tx) (uint64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	next, err := s.enqueue(tx)
	if err != nil {
		return 0, err
	}

	s.evHandler("state: EnqueueTransaction: tx[%s]: blk[%d]", tx, next)

	if s.autoMine && s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return next, nil
}

// enqueue adds the transaction under the lock so the reported index matches
// the block that will seal it.
func (s *State) enqueue(tx database.Tx) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tail, err := s.tail()
	if err != nil {
		return 0, err
	}

	s.mempool.Add(tx)

	return tail.Index + 1, nil
}

// RetrieveMempool returns a copy of the pending transactions.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.Copy()
}

// QueryMempoolLength returns the number of pending transactions.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}
