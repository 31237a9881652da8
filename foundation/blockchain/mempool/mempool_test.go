package mempool_test

import (
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCRUD(t *testing.T) {
	type table struct {
		name string
		txs  []database.Tx
	}

	tt := []table{
		{
			name: "basic",
			txs: []database.Tx{
				{Sender: "bill", Recipient: "ale", Amount: "10"},
				{Sender: "ale", Recipient: "kennedy", Amount: "50"},
				{Sender: "0", Recipient: "miner", Amount: "1"},
			},
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transactions.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					for i, tx := range tst.txs {
						if n := mp.Add(tx); n != i+1 {
							t.Fatalf("\t%s\tTest %d:\tShould get back the new pool size, got %d, exp %d.", failed, testID, n, i+1)
						}
						t.Logf("\t%s\tTest %d:\tShould be able to add new transaction: %s", success, testID, tx)
					}

					for i, tx := range mp.Copy() {
						if tx != tst.txs[i] {
							t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, tx)
							t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.txs[i])
							t.Fatalf("\t%s\tTest %d:\tShould keep submission order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould keep submission order.", success, testID)

					trans := mp.Drain()
					if len(trans) != len(tst.txs) {
						t.Fatalf("\t%s\tTest %d:\tShould drain every transaction, got %d, exp %d.", failed, testID, len(trans), len(tst.txs))
					}
					t.Logf("\t%s\tTest %d:\tShould drain every transaction.", success, testID)

					if mp.Count() != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould have an empty pool after drain, got %d.", failed, testID, mp.Count())
					}
					t.Logf("\t%s\tTest %d:\tShould have an empty pool after drain.", success, testID)

					if again := mp.Drain(); len(again) != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould not hand out a transaction twice, got %d.", failed, testID, len(again))
					}
					t.Logf("\t%s\tTest %d:\tShould not hand out a transaction twice.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestCopy(t *testing.T) {
	mp := mempool.New()
	mp.Add(database.Tx{Sender: "bill", Recipient: "ale", Amount: "1"})
	mp.Add(database.Tx{Sender: "ale", Recipient: "bill", Amount: "0.5"})

	trans := mp.Copy()
	if len(trans) != 2 || trans[0].Sender != "bill" || trans[1].Amount != "0.5" {
		t.Fatalf("\t%s\tShould get back the pool in submission order, got %v.", failed, trans)
	}
	t.Logf("\t%s\tShould get back the pool in submission order.", success)

	trans[0].Amount = "1000"
	if mp.Copy()[0].Amount != "1" {
		t.Fatalf("\t%s\tShould not share storage with the pool.", failed)
	}
	if mp.Count() != 2 {
		t.Fatalf("\t%s\tShould leave the pool in place, got %d.", failed, mp.Count())
	}
	t.Logf("\t%s\tShould leave the pool untouched.", success)
}
