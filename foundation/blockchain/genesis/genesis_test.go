package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestLoad(t *testing.T) {
	t.Log("Given the need to load genesis parameters.")
	{
		t.Logf("\tTest 0:\tWhen no file is specified.")
		{
			g, err := genesis.Load("")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load the defaults: %v", failed, err)
			}
			if g != genesis.Default() {
				t.Fatalf("\t%s\tTest 0:\tShould get back the defaults, got %+v.", failed, g)
			}
			t.Logf("\t%s\tTest 0:\tShould get back the defaults.", success)
		}

		t.Logf("\tTest 1:\tWhen a partial file is specified.")
		{
			path := filepath.Join(t.TempDir(), "genesis.toml")
			data := "timestamp = 1700000000.5\ndifficulty = 2\n"
			if err := os.WriteFile(path, []byte(data), 0600); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to write the file: %v", failed, err)
			}

			g, err := genesis.Load(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to load the file: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to load the file.", success)

			exp := genesis.Default()
			exp.Timestamp = 1700000000.5
			exp.Difficulty = 2
			if g != exp {
				t.Logf("\t%s\tTest 1:\tgot: %+v", failed, g)
				t.Logf("\t%s\tTest 1:\texp: %+v", failed, exp)
				t.Fatalf("\t%s\tTest 1:\tShould keep defaults for missing values.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould keep defaults for missing values.", success)
		}

		t.Logf("\tTest 2:\tWhen the difficulty is out of range.")
		{
			path := filepath.Join(t.TempDir(), "genesis.toml")
			if err := os.WriteFile(path, []byte("difficulty = 65\n"), 0600); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to write the file: %v", failed, err)
			}

			if _, err := genesis.Load(path); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject the file.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject the file.", success)
		}
	}
}
