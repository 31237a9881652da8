// Package database maintains the data model of the blockchain: blocks,
// transactions, the canonical digest of a block and the rules that make a
// sequence of blocks a valid chain.
package database

import (
	"crypto/sha256"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Block represents a group of transactions sealed together and linked to
// its predecessor by hash.
type Block struct {
	Index        uint64  `json:"index"`         // Position in the chain, starting at 1.
	Timestamp    float64 `json:"timestamp"`     // Seconds since epoch the block was sealed.
	Transactions []Tx    `json:"transactions"`  // Transactions taken from the pool.
	Proof        uint64  `json:"proof"`         // Value solving the POW puzzle against the parent proof.
	PreviousHash string  `json:"previous_hash"` // Digest of the parent block.
}

// NewBlock constructs the block following parent. The timestamp never goes
// backwards relative to the parent.
func NewBlock(parent Block, proof uint64, previousHash string, trans []Tx) Block {
	ts := Now()
	if ts < parent.Timestamp {
		ts = parent.Timestamp
	}

	if trans == nil {
		trans = []Tx{}
	}

	return Block{
		Index:        parent.Index + 1,
		Timestamp:    ts,
		Transactions: trans,
		Proof:        proof,
		PreviousHash: previousHash,
	}
}

// NewGenesisBlock constructs the first block of a chain. A zero timestamp is
// replaced with the current time.
func NewGenesisBlock(timestamp float64, proof uint64, previousHash string) Block {
	if timestamp == 0 {
		timestamp = Now()
	}

	return Block{
		Index:        1,
		Timestamp:    timestamp,
		Transactions: []Tx{},
		Proof:        proof,
		PreviousHash: previousHash,
	}
}

// Hash returns the lowercase hex sha256 digest of the canonical form of
// the block.
func (b Block) Hash() string {
	hash := sha256.Sum256(b.Canonical())
	return common.Bytes2Hex(hash[:])
}

// Now returns the current time as fractional seconds since epoch.
func Now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
