package database

import "errors"

// Set of errors describing violations of the chain data model.
var (
	// ErrEmptyChain is returned when the chain is used before the genesis
	// block exists. It signals a programming error.
	ErrEmptyChain = errors.New("chain has no genesis block")

	// ErrMalformedChain is returned when a candidate chain breaks the hash
	// link or proof of work rules.
	ErrMalformedChain = errors.New("malformed chain")

	// ErrMissingField is returned when a transaction is missing a required
	// field.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidAmount is returned when an amount is not a JSON number.
	ErrInvalidAmount = errors.New("invalid amount")
)
