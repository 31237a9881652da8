package cmd

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

// chainCmd represents the chain command
var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the chain held by the node",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Chain  []database.Block `json:"chain"`
			Length int              `json:"length"`
		}
		if err := do(newClient().R(), http.MethodGet, "/v1/chain", &resp); err != nil {
			return err
		}

		return renderChain(cmd.OutOrStdout(), resp.Chain)
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

// renderChain writes one row per block.
func renderChain(w io.Writer, chain []database.Block) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRowAlignment(tw.AlignRight),
	)
	table.Header([]string{"Index", "Timestamp", "Txs", "Proof", "Previous Hash", "Hash"})

	rows := make([][]string, 0, len(chain))
	for _, block := range chain {
		rows = append(rows, []string{
			strconv.FormatUint(block.Index, 10),
			strconv.FormatFloat(block.Timestamp, 'f', 3, 64),
			strconv.Itoa(len(block.Transactions)),
			humanize.Comma(int64(block.Proof)),
			short(block.PreviousHash),
			short(block.Hash()),
		})
	}

	if err := table.Bulk(rows); err != nil {
		return err
	}

	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "length: %d\n", len(chain))
	return err
}

// short trims a digest for display.
func short(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "..."
}
