package store

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/shopspring/decimal"
)

const prefixBalance = "BALANCE:"

func (bs *BadgerStore) ReadBalance(account string) (decimal.Decimal, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	key := []byte(prefixBalance + account)
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return decimal.Zero, nil
	} else if err != nil {
		return decimal.Zero, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(string(val))
}

func (bs *BadgerStore) WriteBalance(account string, amount decimal.Decimal) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		key := []byte(prefixBalance + account)
		return txn.Set(key, []byte(amount.String()))
	})
}
