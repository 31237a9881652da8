package public

import (
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// newTx is what a client submits to enqueue a transaction. Pointers tell a
// missing key apart from a zero value.
type newTx struct {
	Sender    *string          `json:"sender" validate:"required"`
	Recipient *string          `json:"recipient" validate:"required"`
	Amount    *database.Amount `json:"amount" validate:"required"`
}

type txAccepted struct {
	Message string `json:"message"`
}

type mined struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	Transactions []database.Tx `json:"transactions"`
	Proof        uint64        `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}

type chain struct {
	Chain  []database.Block `json:"chain"`
	Length int              `json:"length"`
}

type registerNodes struct {
	Nodes []string `json:"nodes" validate:"required,min=1"`
}

// nodesRegistered lists the whole registry. Host is the private host:port
// other nodes use to register this one.
type nodesRegistered struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
	Host       string   `json:"host"`
}

type failedPeer struct {
	Host  string `json:"host"`
	Error string `json:"error"`
}

type chainReplaced struct {
	Message     string           `json:"message"`
	NewChain    []database.Block `json:"new_chain"`
	FailedPeers []failedPeer     `json:"failed_peers"`
}

type chainKept struct {
	Message     string           `json:"message"`
	Chain       []database.Block `json:"chain"`
	FailedPeers []failedPeer     `json:"failed_peers"`
}
