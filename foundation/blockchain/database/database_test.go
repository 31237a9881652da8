package database_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/pow"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const difficulty = 1

// =============================================================================

func TestCanonical(t *testing.T) {
	type table struct {
		name  string
		block database.Block
		exp   string
	}

	tt := []table{
		{
			name:  "genesis",
			block: database.Block{Index: 1, Timestamp: 1700000000, Transactions: []database.Tx{}, Proof: 100, PreviousHash: "1"},
			exp:   `{"index": 1, "previous_hash": "1", "proof": 100, "timestamp": 1700000000.0, "transactions": []}`,
		},
		{
			name: "transactions",
			block: database.Block{
				Index:     2,
				Timestamp: 1700000000.123456,
				Transactions: []database.Tx{
					{Sender: "0", Recipient: "miner", Amount: "1"},
					{Sender: "bill", Recipient: "ale", Amount: "-5"},
				},
				Proof:        35293,
				PreviousHash: "abc",
			},
			exp: `{"index": 2, "previous_hash": "abc", "proof": 35293, "timestamp": 1700000000.123456, "transactions": [{"amount": 1, "recipient": "miner", "sender": "0"}, {"amount": -5, "recipient": "ale", "sender": "bill"}]}`,
		},
		{
			name: "escaping",
			block: database.Block{
				Index:        3,
				Timestamp:    0.00001,
				Transactions: []database.Tx{{Sender: "caf\u00e9 \"q\"\n", Recipient: "\U0001F600\\", Amount: "0"}},
				PreviousHash: "1",
			},
			exp: `{"index": 3, "previous_hash": "1", "proof": 0, "timestamp": 1e-05, "transactions": [{"amount": 0, "recipient": "\ud83d\ude00\\", "sender": "caf\u00e9 \"q\"\n"}]}`,
		},
		{
			name: "fractional amounts",
			block: database.Block{
				Index:     5,
				Timestamp: 1700000000,
				Transactions: []database.Tx{
					{Sender: "bill", Recipient: "ale", Amount: "1.5"},
					{Sender: "bill", Recipient: "ale", Amount: "0.50"},
					{Sender: "bill", Recipient: "ale", Amount: "1e2"},
					{Sender: "bill", Recipient: "ale", Amount: "-0"},
				},
				PreviousHash: "1",
			},
			exp: `{"index": 5, "previous_hash": "1", "proof": 0, "timestamp": 1700000000.0, "transactions": [{"amount": 1.5, "recipient": "ale", "sender": "bill"}, {"amount": 0.5, "recipient": "ale", "sender": "bill"}, {"amount": 100.0, "recipient": "ale", "sender": "bill"}, {"amount": 0, "recipient": "ale", "sender": "bill"}]}`,
		},
		{
			name:  "large timestamp",
			block: database.Block{Index: 4, Timestamp: 1e16, PreviousHash: "1"},
			exp:   `{"index": 4, "previous_hash": "1", "proof": 0, "timestamp": 1e+16, "transactions": []}`,
		},
	}

	t.Log("Given the need to render blocks in canonical form.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling block %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					got := string(tst.block.Canonical())
					if got != tst.exp {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get back the canonical form.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the canonical form.", success, testID)

					sum := sha256.Sum256([]byte(tst.exp))
					if exp := hex.EncodeToString(sum[:]); tst.block.Hash() != exp {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, tst.block.Hash())
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, exp)
						t.Fatalf("\t%s\tTest %d:\tShould hash the canonical form with sha256.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould hash the canonical form with sha256.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestHashSurvivesWire(t *testing.T) {
	chain := buildChain(t, 3)

	data, err := json.Marshal(chain)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to marshal the chain: %v", failed, err)
	}

	// Decode into a generic shape first so field order differs on the way back.
	var generic []map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("\t%s\tShould be able to unmarshal the chain: %v", failed, err)
	}
	data, err = json.Marshal(generic)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to re-marshal the chain: %v", failed, err)
	}

	var received []database.Block
	if err := json.Unmarshal(data, &received); err != nil {
		t.Fatalf("\t%s\tShould be able to decode the chain: %v", failed, err)
	}

	for i := range chain {
		if chain[i].Hash() != received[i].Hash() {
			t.Fatalf("\t%s\tShould get the same hash for blk[%d] after the wire.", failed, chain[i].Index)
		}
	}
	t.Logf("\t%s\tShould get the same hash for every block after the wire.", success)

	if !database.IsValid(received, difficulty) {
		t.Fatalf("\t%s\tShould get a valid chain after the wire.", failed)
	}
	t.Logf("\t%s\tShould get a valid chain after the wire.", success)
}

func TestValidate(t *testing.T) {
	type table struct {
		name   string
		chain  func(t *testing.T) []database.Block
		expErr error
	}

	tt := []table{
		{
			name:  "genesis only",
			chain: func(t *testing.T) []database.Block { return buildChain(t, 1) },
		},
		{
			name:  "mined",
			chain: func(t *testing.T) []database.Block { return buildChain(t, 5) },
		},
		{
			name:   "empty",
			chain:  func(t *testing.T) []database.Block { return nil },
			expErr: database.ErrEmptyChain,
		},
		{
			name: "corrupted previous hash",
			chain: func(t *testing.T) []database.Block {
				chain := buildChain(t, 3)
				chain[1].PreviousHash = "0000000000000000000000000000000000000000000000000000000000000000"
				return chain
			},
			expErr: database.ErrMalformedChain,
		},
		{
			name: "mutated transaction",
			chain: func(t *testing.T) []database.Block {
				chain := buildChain(t, 3)
				chain[1].Transactions[0].Amount = "1000"
				return chain
			},
			expErr: database.ErrMalformedChain,
		},
		{
			name: "reordered transactions",
			chain: func(t *testing.T) []database.Block {
				chain := buildChain(t, 3)
				trans := chain[1].Transactions
				trans[0], trans[1] = trans[1], trans[0]
				return chain
			},
			expErr: database.ErrMalformedChain,
		},
		{
			name: "mutated timestamp",
			chain: func(t *testing.T) []database.Block {
				chain := buildChain(t, 4)
				chain[0].Timestamp++
				return chain
			},
			expErr: database.ErrMalformedChain,
		},
		{
			name: "bad proof",
			chain: func(t *testing.T) []database.Block {
				chain := buildChain(t, 2)
				parent := chain[0]

				var proof uint64
				for pow.ValidProof(difficulty, parent.Proof, proof) {
					proof++
				}
				chain[1] = database.NewBlock(parent, proof, parent.Hash(), nil)
				return chain
			},
			expErr: database.ErrMalformedChain,
		},
	}

	t.Log("Given the need to validate a chain.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s chain.", testID, tst.name)
			{
				f := func(t *testing.T) {
					chain := tst.chain(t)
					err := database.Validate(chain, difficulty)

					if tst.expErr == nil {
						if err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould accept the chain: %v", failed, testID, err)
						}
						if !database.IsValid(chain, difficulty) {
							t.Fatalf("\t%s\tTest %d:\tShould report the chain as valid.", failed, testID)
						}
						t.Logf("\t%s\tTest %d:\tShould accept the chain.", success, testID)
						return
					}

					if !errors.Is(err, tst.expErr) {
						t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, err)
						t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, tst.expErr)
						t.Fatalf("\t%s\tTest %d:\tShould reject the chain.", failed, testID)
					}
					if database.IsValid(chain, difficulty) {
						t.Fatalf("\t%s\tTest %d:\tShould report the chain as invalid.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould reject the chain: %v", success, testID, err)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestNewTx(t *testing.T) {
	if _, err := database.NewTx("0", "minerA", "1"); err != nil {
		t.Fatalf("\t%s\tShould accept a complete transaction: %v", failed, err)
	}
	t.Logf("\t%s\tShould accept a complete transaction.", success)

	for _, tx := range [][2]string{{"", "ale"}, {"bill", ""}} {
		_, err := database.NewTx(tx[0], tx[1], "1")
		if !errors.Is(err, database.ErrMissingField) {
			t.Fatalf("\t%s\tShould reject a transaction missing a field, got %v.", failed, err)
		}
	}
	t.Logf("\t%s\tShould reject a transaction missing a field.", success)
}

func TestNewBlockTimestamp(t *testing.T) {
	parent := database.NewGenesisBlock(database.Now()+3600, 100, "1")

	block := database.NewBlock(parent, 0, parent.Hash(), nil)
	if block.Timestamp < parent.Timestamp {
		t.Fatalf("\t%s\tShould never move the timestamp backwards.", failed)
	}
	if block.Index != parent.Index+1 {
		t.Fatalf("\t%s\tShould use the next index, got %d.", failed, block.Index)
	}
	if block.Transactions == nil {
		t.Fatalf("\t%s\tShould never have a nil transaction list.", failed)
	}
	t.Logf("\t%s\tShould construct the next block.", success)
}

// =============================================================================

// buildChain mines a chain of n blocks with two transactions in every block
// after genesis.
func buildChain(t *testing.T, n int) []database.Block {
	t.Helper()

	chain := []database.Block{database.NewGenesisBlock(1700000000, 100, "1")}
	for len(chain) < n {
		parent := chain[len(chain)-1]

		proof, err := pow.Search(context.Background(), difficulty, parent.Proof, nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}

		trans := []database.Tx{
			{Sender: "bill", Recipient: "ale", Amount: database.NewAmount(int64(len(chain)))},
			database.NewRewardTx("miner", 1),
		}
		chain = append(chain, database.NewBlock(parent, proof, parent.Hash(), trans))
	}

	return chain
}
