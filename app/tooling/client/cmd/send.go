package cmd

import (
	"fmt"
	"net/http"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var (
	sender    string
	recipient string
	amount    string
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := database.ParseAmount(amount)
		if err != nil {
			return err
		}

		body := struct {
			Sender    string          `json:"sender"`
			Recipient string          `json:"recipient"`
			Amount    database.Amount `json:"amount"`
		}{
			Sender:    sender,
			Recipient: recipient,
			Amount:    value,
		}

		var resp struct {
			Message string `json:"message"`
		}
		if err := do(newClient().R().SetBody(body), http.MethodPost, "/v1/transactions/new", &resp); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sender, "from", "f", "", "Sender of the transaction.")
	sendCmd.Flags().StringVarP(&recipient, "to", "t", "", "Recipient of the transaction.")
	sendCmd.Flags().StringVarP(&amount, "amount", "a", "0", "Amount to send, any JSON number such as 10 or 0.5.")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
}
