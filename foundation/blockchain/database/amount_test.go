package database_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

func TestParseAmount(t *testing.T) {
	type table struct {
		name   string
		input  string
		exp    database.Amount
		expErr bool
	}

	tt := []table{
		{name: "integer", input: "5", exp: "5"},
		{name: "negative", input: "-5", exp: "-5"},
		{name: "fraction", input: "0.5", exp: "0.5"},
		{name: "exponent", input: " 1e2 ", exp: "1e2"},
		{name: "string", input: `"5"`, expErr: true},
		{name: "word", input: "five", expErr: true},
		{name: "bool", input: "true", expErr: true},
		{name: "empty", input: "", expErr: true},
		{name: "trailing", input: "1 2", expErr: true},
	}

	t.Log("Given the need to accept any JSON number as an amount.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					got, err := database.ParseAmount(tst.input)
					if tst.expErr {
						if !errors.Is(err, database.ErrInvalidAmount) {
							t.Fatalf("\t%s\tTest %d:\tShould reject the amount, got %v.", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould reject the amount.", success, testID)
						return
					}

					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould accept the amount: %v", failed, testID, err)
					}
					if got != tst.exp {
						t.Fatalf("\t%s\tTest %d:\tShould keep the literal %q, got %q.", failed, testID, tst.exp, got)
					}
					t.Logf("\t%s\tTest %d:\tShould keep the literal.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestAmountWire(t *testing.T) {
	var tx database.Tx
	if err := json.Unmarshal([]byte(`{"sender":"alice","recipient":"bob","amount":0.50}`), &tx); err != nil {
		t.Fatalf("\t%s\tShould decode a fractional amount: %v", failed, err)
	}
	if tx.Amount != "0.50" {
		t.Fatalf("\t%s\tShould keep the literal, got %q.", failed, tx.Amount)
	}
	t.Logf("\t%s\tShould decode a fractional amount.", success)

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("\t%s\tShould encode the transaction: %v", failed, err)
	}
	if exp := `{"sender":"alice","recipient":"bob","amount":0.50}`; string(data) != exp {
		t.Fatalf("\t%s\tShould encode the amount as a number, got %s.", failed, data)
	}
	t.Logf("\t%s\tShould encode the amount as a number.", success)

	if err := json.Unmarshal([]byte(`{"sender":"alice","recipient":"bob","amount":"5"}`), &tx); err == nil {
		t.Fatalf("\t%s\tShould reject an amount sent as a string.", failed)
	}
	t.Logf("\t%s\tShould reject an amount sent as a string.", success)
}
