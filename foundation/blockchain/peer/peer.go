// Package peer maintains the registry of known peer nodes. Entries are only
// ever added; there is no liveness eviction.
package peer

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidAddress is returned when an address has no host component.
var ErrInvalidAddress = errors.New("invalid peer address")

// Peer represents information about a Node in the network.
type Peer struct {
	Host string `json:"host"`
}

// New constructs a peer from an address after normalizing it to its
// host:port form.
func New(address string) (Peer, error) {
	host, err := Normalize(address)
	if err != nil {
		return Peer{}, err
	}

	return Peer{Host: host}, nil
}

// Match validates if the specified host matches this node.
func (p Peer) Match(host string) bool {
	return p.Host == host
}

// String implements the fmt.Stringer interface for logging.
func (p Peer) String() string {
	return p.Host
}

// Normalize reduces an address to its lowercase host:port form. Addresses may
// carry a scheme, a path and a trailing slash: "http://192.168.0.5:5000" and
// "192.168.0.5:5000/" both normalize to "192.168.0.5:5000".
func Normalize(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidAddress)
	}

	if !strings.Contains(address, "://") {
		address = "http://" + address
	}

	u, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	if u.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidAddress, address)
	}

	return strings.ToLower(u.Host), nil
}

// =============================================================================

// PeerStatus represents information about the status
// of any given peer.
type PeerStatus struct {
	LatestBlockHash  string `json:"latest_block_hash"`
	LatestBlockIndex uint64 `json:"latest_block_index"`
	KnownPeers       []Peer `json:"known_peers"`
}

// =============================================================================

// PeerSet represents the data representation to maintain a set of known peers.
type PeerSet struct {
	mu  sync.RWMutex
	set map[Peer]struct{}
}

// NewPeerSet constructs a new info set to manage node peer information.
func NewPeerSet() *PeerSet {
	return &PeerSet{
		set: make(map[Peer]struct{}),
	}
}

// Add adds a new node to the set. It reports false if the node was
// already known.
func (ps *PeerSet) Add(peer Peer) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	_, exists := ps.set[peer]
	if !exists {
		ps.set[peer] = struct{}{}
		return true
	}

	return false
}

// Register normalizes every address and adds the nodes to the set. If any
// address is invalid nothing is added. It returns the nodes that were not
// already known.
func (ps *PeerSet) Register(addresses ...string) ([]Peer, error) {
	peers := make([]Peer, len(addresses))
	for i, address := range addresses {
		peer, err := New(address)
		if err != nil {
			return nil, err
		}
		peers[i] = peer
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	var added []Peer
	for _, peer := range peers {
		if _, exists := ps.set[peer]; !exists {
			ps.set[peer] = struct{}{}
			added = append(added, peer)
		}
	}

	return added, nil
}

// Len returns the number of known peers.
func (ps *PeerSet) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return len(ps.set)
}

// Copy returns a list of the known peers sorted by host, leaving out the
// specified host.
func (ps *PeerSet) Copy(host string) []Peer {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	peers := make([]Peer, 0, len(ps.set))
	for peer := range ps.set {
		if !peer.Match(host) {
			peers = append(peers, peer)
		}
	}

	sort.Slice(peers, func(i, j int) bool { return peers[i].Host < peers[j].Host })

	return peers
}
