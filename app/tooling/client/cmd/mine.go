package cmd

import (
	"fmt"
	"net/http"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to forge the next block",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Message      string        `json:"message"`
			Index        uint64        `json:"index"`
			Transactions []database.Tx `json:"transactions"`
			Proof        uint64        `json:"proof"`
			PreviousHash string        `json:"previous_hash"`
		}
		if err := do(newClient().R(), http.MethodGet, "/v1/mine", &resp); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: block %d proof %d\n", resp.Message, resp.Index, resp.Proof)
		fmt.Fprintf(out, "previous hash: %s\n", resp.PreviousHash)
		for _, tx := range resp.Transactions {
			fmt.Fprintf(out, "  %s\n", tx)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
}
