package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/shopspring/decimal"
)

// BalanceBook settles purchases against locally tracked balances, for
// deployments without an external payment network. The payer is the actor
// bound to the context.
type BalanceBook struct {
	mutex sync.Mutex
	store Store
}

func NewBalanceBook(store Store) *BalanceBook {
	return &BalanceBook{store: store}
}

func (bb *BalanceBook) Transfer(ctx context.Context, recipient string, amount decimal.Decimal) error {
	if recipient == "" {
		return fmt.Errorf("invalid recipient")
	}
	if !amount.IsPositive() {
		return fmt.Errorf("invalid amount %s", amount)
	}
	payer, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	bb.mutex.Lock()
	defer bb.mutex.Unlock()

	balance, err := bb.store.ReadBalance(payer)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("insufficient funds %s %s", balance, amount)
	}
	err = bb.store.WriteBalance(payer, balance.Sub(amount))
	if err != nil {
		return err
	}
	credit, err := bb.store.ReadBalance(recipient)
	if err != nil {
		return err
	}
	err = bb.store.WriteBalance(recipient, credit.Add(amount))
	if err != nil {
		return err
	}
	logger.Verbosef("BalanceBook.Transfer(%s, %s) => from %s\n", recipient, amount, payer)
	return nil
}

// Deposit credits an account, the faucet for local deployments.
func (bb *BalanceBook) Deposit(account string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("invalid amount %s", amount)
	}
	bb.mutex.Lock()
	defer bb.mutex.Unlock()

	balance, err := bb.store.ReadBalance(account)
	if err != nil {
		return err
	}
	return bb.store.WriteBalance(account, balance.Add(amount))
}
