// Package state is the core API for the blockchain and implements all the
// business rules and processing. A State value owns the chain, the pool of
// pending transactions and the registry of known peers.
package state

import (
	"sync"

	"github.com/ardanlabs/powchain/foundation/blockchain/consensus"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/mempool"
	"github.com/ardanlabs/powchain/foundation/blockchain/peer"
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining and conflict resolution.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
	SignalResolve()
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	NodeID     string
	Host       string
	Genesis    genesis.Genesis
	KnownPeers *peer.PeerSet
	Fetcher    consensus.Fetcher
	AutoMine   bool
	EvHandler  EventHandler
}

// State manages the blockchain held in memory.
type State struct {
	nodeID    string
	host      string
	autoMine  bool
	evHandler EventHandler

	genesis    genesis.Genesis
	knownPeers *peer.PeerSet
	resolver   *consensus.Resolver

	// mu guards the chain and the pool together so a block is always sealed
	// against a consistent snapshot of the pool.
	mu      sync.Mutex
	chain   []database.Block
	mempool *mempool.Mempool

	Worker Worker
}

// New constructs a new blockchain for data management. The chain starts
// with the genesis block described by the configuration.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	state := State{
		nodeID:    cfg.NodeID,
		host:      cfg.Host,
		autoMine:  cfg.AutoMine,
		evHandler: ev,

		genesis:    cfg.Genesis,
		knownPeers: knownPeers,
		resolver:   consensus.NewResolver(cfg.Fetcher, cfg.Genesis.Difficulty, ev),
		mempool:    mempool.New(),
	}

	// The store always starts with its genesis block.
	g := cfg.Genesis
	state.chain = []database.Block{database.NewGenesisBlock(g.Timestamp, g.Proof, g.PreviousHash)}

	ev("state: New: genesis: blk[%d]: hash[%s]", state.chain[0].Index, state.chain[0].Hash())

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all blockchain writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// IsValid reports if the chain follows the hash link and proof of work rules
// of this node.
func (s *State) IsValid(chain []database.Block) bool {
	return database.IsValid(chain, s.genesis.Difficulty)
}
