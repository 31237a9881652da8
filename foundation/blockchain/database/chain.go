package database

import (
	"fmt"

	"github.com/ardanlabs/powchain/foundation/blockchain/pow"
)

// Validate walks the chain from the second block onward and checks for every
// adjacent pair that the later block links to the digest of the earlier block
// and that the pair of proofs solves the POW puzzle. The genesis block itself
// is never checked. The first violation found is returned wrapped in
// ErrMalformedChain.
func Validate(chain []Block, difficulty uint) error {
	if len(chain) == 0 {
		return fmt.Errorf("%w: %w", ErrMalformedChain, ErrEmptyChain)
	}

	lastBlock := chain[0]
	for _, block := range chain[1:] {
		if hash := lastBlock.Hash(); block.PreviousHash != hash {
			return fmt.Errorf("%w: blk[%d]: previous hash doesn't match parent, got %s, exp %s", ErrMalformedChain, block.Index, block.PreviousHash, hash)
		}

		if !pow.ValidProof(difficulty, lastBlock.Proof, block.Proof) {
			return fmt.Errorf("%w: blk[%d]: proof %d does not solve parent proof %d", ErrMalformedChain, block.Index, block.Proof, lastBlock.Proof)
		}

		lastBlock = block
	}

	return nil
}

// IsValid reports if the chain passes Validate.
func IsValid(chain []Block, difficulty uint) bool {
	return Validate(chain, difficulty) == nil
}
