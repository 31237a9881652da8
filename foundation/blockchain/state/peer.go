package state

import (
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/peer"
)

// RegisterNodes normalizes the addresses and adds them to the set of known
// peers. If any address is invalid no peer is added. It returns the peers
// that were not already known.
func (s *State) RegisterNodes(addresses ...string) ([]peer.Peer, error) {
	added, err := s.knownPeers.Register(addresses...)
	if err != nil {
		return nil, err
	}

	for _, pr := range added {
		s.evHandler("state: RegisterNodes: added peer[%s]", pr)
	}

	return added, nil
}

// RetrieveKnownPeers retrieves a copy of the known peer list excluding
// this node.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy(s.host)
}

// RetrieveRegistry retrieves a copy of every registered peer, including this
// node if it was registered.
func (s *State) RetrieveRegistry() []peer.Peer {
	return s.knownPeers.Copy("")
}

// QueryKnownPeersLength returns the number of registered peers.
func (s *State) QueryKnownPeersLength() int {
	return s.knownPeers.Len()
}

// RetrieveHost returns the private host:port of this node. Other nodes
// register it under this address.
func (s *State) RetrieveHost() string {
	return s.host
}

// RetrieveNodeID returns the identifier that receives mining rewards.
func (s *State) RetrieveNodeID() string {
	return s.nodeID
}

// RetrieveGenesis returns the genesis parameters of the chain.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// Status returns the information other nodes need to know about this one.
func (s *State) Status() (peer.PeerStatus, error) {
	tail, err := s.Tail()
	if err != nil {
		return peer.PeerStatus{}, err
	}

	status := peer.PeerStatus{
		LatestBlockHash:  tail.Hash(),
		LatestBlockIndex: tail.Index,
		KnownPeers:       s.RetrieveKnownPeers(),
	}

	return status, nil
}
