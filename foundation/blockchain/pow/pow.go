// Package pow implements the proof of work puzzle that rate-limits the
// creation of new blocks.
package pow

import (
	"context"
	"crypto/sha256"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/common"
)

// DefaultDifficulty is the number of leading zeros required when nothing
// else is configured.
const DefaultDifficulty uint = 4

// MaxDifficulty is the length of a hex encoded sha256 digest.
const MaxDifficulty uint = 64

// reportEvery controls how often a search in progress reports the number of
// attempts made.
const reportEvery = 1_000_000

// =============================================================================

// ValidProof reports if the sha256 digest of the concatenated decimal forms of
// lastProof and proof starts with difficulty '0' characters.
func ValidProof(difficulty uint, lastProof uint64, proof uint64) bool {
	return isHashSolved(difficulty, Guess(lastProof, proof))
}

// Guess returns the hex digest checked by ValidProof.
func Guess(lastProof uint64, proof uint64) string {
	buf := make([]byte, 0, 40)
	buf = strconv.AppendUint(buf, lastProof, 10)
	buf = strconv.AppendUint(buf, proof, 10)

	hash := sha256.Sum256(buf)
	return common.Bytes2Hex(hash[:])
}

// Search performs a linear search starting at zero and returns the first proof
// that satisfies ValidProof for the specified last proof. The search has no
// upper bound. It only returns early with the context error when the context
// is cancelled.
func Search(ctx context.Context, difficulty uint, lastProof uint64, ev func(v string, args ...any)) (uint64, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("pow: Search: MINING: started: lastProof[%d]: difficulty[%d]", lastProof, difficulty)

	var attempts uint64
	for proof := uint64(0); ; proof++ {
		attempts++
		if attempts%reportEvery == 0 {
			ev("pow: Search: MINING: attempts[%s]", humanize.Comma(int64(attempts)))
		}

		if ctx.Err() != nil {
			ev("pow: Search: MINING: CANCELLED: attempts[%s]", humanize.Comma(int64(attempts)))
			return 0, ctx.Err()
		}

		if !ValidProof(difficulty, lastProof, proof) {
			continue
		}

		ev("pow: Search: MINING: SOLVED: proof[%d]: attempts[%s]", proof, humanize.Comma(int64(attempts)))
		return proof, nil
	}
}

// isHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	const match = "0000000000000000000000000000000000000000000000000000000000000000"

	if difficulty > MaxDifficulty || len(hash) != len(match) {
		return false
	}

	return hash[:difficulty] == match[:difficulty]
}
