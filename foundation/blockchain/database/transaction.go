package database

import (
	"fmt"

	"github.com/ardanlabs/powchain/foundation/validate"
)

// RewardSender is the sender used for the transaction that pays the miner of
// a block.
const RewardSender = "0"

// Tx represents a transfer of value between two parties. Once sealed into a
// block a transaction is never changed.
type Tx struct {
	Sender    string `json:"sender" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
	Amount    Amount `json:"amount" validate:"required"`
}

// NewTx constructs a transaction and checks the required fields are present.
func NewTx(sender string, recipient string, amount Amount) (Tx, error) {
	tx := Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	if err := tx.Validate(); err != nil {
		return Tx{}, err
	}

	return tx, nil
}

// NewRewardTx constructs the transaction paying the mining reward.
func NewRewardTx(recipient string, reward int64) Tx {
	return Tx{
		Sender:    RewardSender,
		Recipient: recipient,
		Amount:    NewAmount(reward),
	}
}

// Validate checks the required fields of the transaction. No check is made on
// the value of the amount or the parties involved since no ledger is kept.
func (tx Tx) Validate() error {
	if err := validate.Check(tx); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingField, err)
	}

	return nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%s", tx.Sender, tx.Recipient, tx.Amount)
}
