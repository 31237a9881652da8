// Package consensus reconciles the local chain with the chains held by peer
// nodes using the longest valid chain rule.
package consensus

import (
	"context"
	"errors"
	"sync"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/peer"
)

// ErrPeerUnreachable is returned by a Fetcher when the peer could not be
// contacted. Peers failing this way are skipped.
var ErrPeerUnreachable = errors.New("peer unreachable")

// Fetcher interface represents the behavior required to be implemented by any
// package providing support for retrieving the chain held by a peer.
type Fetcher interface {
	FetchChain(ctx context.Context, pr peer.Peer) ([]database.Block, error)
}

// =============================================================================

// PeerResult is the outcome of asking one peer for its chain. Err is nil when
// the chain was retrieved.
type PeerResult struct {
	Peer  peer.Peer
	Chain []database.Block
	Err   error
}

// Unreachable reports if the peer could not be contacted.
func (pr PeerResult) Unreachable() bool {
	return errors.Is(pr.Err, ErrPeerUnreachable)
}

// Outcome is the result of a resolution. Chain is set to the winning peer
// chain when Replaced is true.
type Outcome struct {
	Replaced bool
	Chain    []database.Block
	Peer     peer.Peer
	Results  []PeerResult
}

// Failed returns the results of the peers that were reached but returned
// something unusable.
func (o Outcome) Failed() []PeerResult {
	var failed []PeerResult
	for _, res := range o.Results {
		if res.Err != nil && !res.Unreachable() {
			failed = append(failed, res)
		}
	}
	return failed
}

// =============================================================================

// Resolver applies the longest valid chain rule.
type Resolver struct {
	fetcher    Fetcher
	difficulty uint
	evHandler  func(v string, args ...any)
}

// NewResolver constructs a resolver that validates candidate chains with the
// specified difficulty.
func NewResolver(fetcher Fetcher, difficulty uint, evHandler func(v string, args ...any)) *Resolver {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	return &Resolver{
		fetcher:    fetcher,
		difficulty: difficulty,
		evHandler:  evHandler,
	}
}

// Resolve fetches the chain of every peer and picks the longest one that is
// strictly longer than the local chain and passes database.Validate. Peers
// are scanned in the order provided so the first of several equally long
// candidates wins. A failing peer never fails the resolution.
func (r *Resolver) Resolve(ctx context.Context, local []database.Block, peers []peer.Peer) Outcome {
	r.evHandler("consensus: Resolve: started: localLength[%d]: peers[%d]", len(local), len(peers))
	defer r.evHandler("consensus: Resolve: completed")

	results := r.fetchAll(ctx, peers)

	out := Outcome{Results: results}
	bestLength := len(local)

	for _, res := range results {
		switch {
		case res.Unreachable():
			r.evHandler("consensus: Resolve: peer[%s]: SKIPPED: %s", res.Peer, res.Err)
			continue

		case res.Err != nil:
			r.evHandler("consensus: Resolve: peer[%s]: ERROR: %s", res.Peer, res.Err)
			continue
		}

		length := len(res.Chain)
		if length <= bestLength {
			r.evHandler("consensus: Resolve: peer[%s]: length[%d] not longer than [%d]", res.Peer, length, bestLength)
			continue
		}

		if err := database.Validate(res.Chain, r.difficulty); err != nil {
			r.evHandler("consensus: Resolve: peer[%s]: REJECTED: %s", res.Peer, err)
			continue
		}

		r.evHandler("consensus: Resolve: peer[%s]: CANDIDATE: length[%d]", res.Peer, length)

		bestLength = length
		out.Replaced = true
		out.Chain = res.Chain
		out.Peer = res.Peer
	}

	return out
}

// fetchAll asks every peer for its chain concurrently. The results keep the
// order of peers.
func (r *Resolver) fetchAll(ctx context.Context, peers []peer.Peer) []PeerResult {
	results := make([]PeerResult, len(peers))

	// Without a fetcher no peer can be reached.
	if r.fetcher == nil {
		for i, pr := range peers {
			results[i] = PeerResult{Peer: pr, Err: ErrPeerUnreachable}
		}
		return results
	}

	var wg sync.WaitGroup
	wg.Add(len(peers))

	for i, pr := range peers {
		go func() {
			defer wg.Done()

			chain, err := r.fetcher.FetchChain(ctx, pr)
			results[i] = PeerResult{
				Peer:  pr,
				Chain: chain,
				Err:   err,
			}
		}()
	}

	wg.Wait()

	return results
}
