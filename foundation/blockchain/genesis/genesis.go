// Package genesis maintains access to the genesis parameters of the chain.
package genesis

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/ardanlabs/powchain/foundation/blockchain/pow"
)

// Genesis represents the genesis file.
type Genesis struct {
	Timestamp    float64 `toml:"timestamp" json:"timestamp"`         // Timestamp of the genesis block, zero means node start time.
	Proof        uint64  `toml:"proof" json:"proof"`                 // Sentinel proof accepted without POW verification.
	PreviousHash string  `toml:"previous_hash" json:"previous_hash"` // Sentinel previous hash of the genesis block.
	Difficulty   uint    `toml:"difficulty" json:"difficulty"`       // Number of leading 0's needed to solve the work problem.
	MiningReward int64   `toml:"mining_reward" json:"mining_reward"` // Reward for mining a block.
}

// Default returns the genesis parameters used when no file is provided.
func Default() Genesis {
	return Genesis{
		Proof:        100,
		PreviousHash: "1",
		Difficulty:   pow.DefaultDifficulty,
		MiningReward: 1,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Values missing from the file keep
// their defaults. An empty path returns the defaults.
func Load(path string) (Genesis, error) {
	genesis := Default()
	if path == "" {
		return genesis, nil
	}

	if _, err := toml.DecodeFile(path, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis file %q: %w", path, err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the genesis parameters can produce a working chain.
func (g Genesis) Validate() error {
	if g.Difficulty > pow.MaxDifficulty {
		return fmt.Errorf("difficulty %d exceeds the maximum of %d", g.Difficulty, pow.MaxDifficulty)
	}

	if g.PreviousHash == "" {
		return fmt.Errorf("previous hash sentinel must not be empty")
	}

	return nil
}
