package cmd

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register [address...]",
	Short: "Register peer nodes",
	Long: `Register peer nodes with the node.

Peers serve their chain on the private API, so register each one by its
private host:port (9080 by default). Either every address is registered or
none is.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := struct {
			Nodes []string `json:"nodes"`
		}{
			Nodes: args,
		}

		var resp struct {
			Message    string   `json:"message"`
			TotalNodes []string `json:"total_nodes"`
			Host       string   `json:"host"`
		}
		if err := do(newClient().R().SetBody(body), http.MethodPost, "/v1/nodes/register", &resp); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %s\n", resp.Message, strings.Join(resp.TotalNodes, ", "))
		fmt.Fprintf(out, "Other nodes register this one as %s\n", resp.Host)
		return nil
	},
}

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve conflicts with the registered nodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Message     string           `json:"message"`
			NewChain    []database.Block `json:"new_chain"`
			Chain       []database.Block `json:"chain"`
			FailedPeers []struct {
				Host  string `json:"host"`
				Error string `json:"error"`
			} `json:"failed_peers"`
		}
		if err := do(newClient().R(), http.MethodGet, "/v1/nodes/resolve", &resp); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, resp.Message)
		for _, fp := range resp.FailedPeers {
			fmt.Fprintf(out, "  peer %s: %s\n", fp.Host, fp.Error)
		}

		chain := resp.Chain
		if resp.NewChain != nil {
			chain = resp.NewChain
		}

		return renderChain(out, chain)
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(resolveCmd)
}
