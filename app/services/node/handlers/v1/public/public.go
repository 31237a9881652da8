// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/powchain/business/sys/metrics"
	"github.com/ardanlabs/powchain/business/web/errs"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/ardanlabs/powchain/foundation/events"
	"github.com/ardanlabs/powchain/foundation/validate"
	"github.com/ardanlabs/powchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public node endpoints.
type Handlers struct {
	Log         *zap.SugaredLogger
	State       *state.State
	WS          websocket.Upgrader
	Evts        *events.Events
	MineTimeout time.Duration
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Mine searches for the next proof, rewards this node and seals the pool
// into a new block.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.MineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.MineTimeout)
		defer cancel()
	}

	block, err := h.State.MineNewBlock(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errs.NewTrusted(fmt.Errorf("no proof found within %v", h.MineTimeout), http.StatusServiceUnavailable)
		}
		return err
	}

	metrics.AddMined()

	resp := mined{
		Message:      "New Block Forged",
		Index:        block.Index,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PreviousHash: block.PreviousHash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining asks the background worker to mine the pending transactions.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.State.Worker == nil {
		return errs.NewTrusted(errors.New("background mining is not running"), http.StatusServiceUnavailable)
	}

	h.State.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// NewTransaction adds a transaction to the pool.
func (h Handlers) NewTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req newTx
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(req); err != nil {
		return err
	}

	tx, err := database.NewTx(*req.Sender, *req.Recipient, *req.Amount)
	if err != nil {
		return err
	}

	next, err := h.State.EnqueueTransaction(tx)
	if err != nil {
		return err
	}

	resp := txAccepted{
		Message: fmt.Sprintf("Transaction will be added to Block %d", next),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Mempool returns the set of uncommitted transactions. When an account is
// named only the transactions it sends or receives are returned.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	acct := web.Param(r, "account")
	mempool := h.State.RetrieveMempool()

	trans := []database.Tx{}
	for _, tx := range mempool {
		if acct != "" && tx.Sender != acct && tx.Recipient != acct {
			continue
		}
		trans = append(trans, tx)
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// Chain returns the full chain held by this node.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.RetrieveChain()

	resp := chain{
		Chain:  blocks,
		Length: len(blocks),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RegisterNodes adds the provided addresses to the set of known peers. Peers
// are reached on their private host:port, so that is the address to register.
// Either every address is registered or none is.
func (h Handlers) RegisterNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req registerNodes
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(req); err != nil {
		return errs.NewTrusted(errors.New("please supply a valid list of nodes"), http.StatusBadRequest)
	}

	if _, err := h.State.RegisterNodes(req.Nodes...); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	peers := h.State.RetrieveRegistry()
	hosts := make([]string, len(peers))
	for i, pr := range peers {
		hosts[i] = pr.Host
	}

	resp := nodesRegistered{
		Message:    "New nodes have been added",
		TotalNodes: hosts,
		Host:       h.State.RetrieveHost(),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Resolve runs the consensus algorithm against every known peer.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	out := h.State.ResolveConflicts(ctx)

	failedPeers := []failedPeer{}
	for _, res := range out.Failed() {
		failedPeers = append(failedPeers, failedPeer{
			Host:  res.Peer.Host,
			Error: res.Err.Error(),
		})
	}

	if out.Replaced {
		metrics.AddReplaced()

		resp := chainReplaced{
			Message:     "Our chain was replaced",
			NewChain:    out.Chain,
			FailedPeers: failedPeers,
		}
		return web.Respond(ctx, w, resp, http.StatusOK)
	}

	resp := chainKept{
		Message:     "Our chain is authoritative",
		Chain:       h.State.RetrieveChain(),
		FailedPeers: failedPeers,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
