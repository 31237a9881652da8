// Package network provides the node to node client used to retrieve the
// chain held by a peer.
package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/consensus"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/peer"
	"github.com/go-resty/resty/v2"
)

// baseURL is the root of the private node API of a peer.
const baseURL = "http://%s/v1/node"

// ErrBadResponse is returned when a peer answers with something that is not
// a usable chain.
var ErrBadResponse = errors.New("bad peer response")

// ChainResponse is the document a node serves for its chain.
type ChainResponse struct {
	Chain  []database.Block `json:"chain"`
	Length int              `json:"length"`
}

// =============================================================================

// Client talks to the private API of peer nodes. It implements the
// consensus.Fetcher interface.
type Client struct {
	rc      *resty.Client
	baseURL string
}

// NewClient constructs a client whose requests give up after timeout.
func NewClient(timeout time.Duration) *Client {
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		rc:      rc,
		baseURL: baseURL,
	}
}

// FetchChain retrieves the chain held by the specified peer. Transport
// failures are reported as consensus.ErrPeerUnreachable, anything else the
// peer answers that is not a usable chain as ErrBadResponse.
func (c *Client) FetchChain(ctx context.Context, pr peer.Peer) ([]database.Block, error) {
	url := fmt.Sprintf("%s/chain", fmt.Sprintf(c.baseURL, pr.Host))

	var doc ChainResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&doc).
		ForceContentType("application/json").
		Get(url)
	if err != nil {
		if resp == nil || resp.RawResponse == nil {
			return nil, fmt.Errorf("%w: %s: %w", consensus.ErrPeerUnreachable, pr.Host, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrBadResponse, pr.Host, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %s: %s", ErrBadResponse, pr.Host, resp.Status(), resp.String())
	}

	if doc.Length != len(doc.Chain) {
		return nil, fmt.Errorf("%w: %s: length %d does not match %d blocks", ErrBadResponse, pr.Host, doc.Length, len(doc.Chain))
	}

	return doc.Chain, nil
}
