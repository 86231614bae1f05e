package store

import (
	"github.com/MixinNetwork/mixin/common"
	"github.com/dgraph-io/badger/v3"
	"github.com/openmarket/nfm/ledger"
)

const (
	prefixAssetPayload = "ASSET:PAYLOAD:"
	prefixAssetHash    = "ASSET:HASH:"
)

func (bs *BadgerStore) WriteAsset(a *ledger.Asset) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		key := []byte(prefixAssetPayload + a.Id)
		val := common.MsgpackMarshalPanic(a)
		err := txn.Set(key, val)
		if err != nil {
			return err
		}

		key = append([]byte(prefixAssetHash), a.Hash...)
		return txn.Set(key, []byte(a.Id))
	})
}

func (bs *BadgerStore) ReadAsset(id string) (*ledger.Asset, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readAsset(txn, id)
}

func (bs *BadgerStore) ReadAssetIdByHash(hash []byte) (string, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	key := append([]byte(prefixAssetHash), hash...)
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return "", nil
	} else if err != nil {
		return "", err
	}
	id, err := item.ValueCopy(nil)
	return string(id), err
}

func (bs *BadgerStore) ListAssets() ([]*ledger.Asset, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefixAssetPayload)
	it := txn.NewIterator(opts)
	defer it.Close()

	var assets []*ledger.Asset
	for it.Seek(opts.Prefix); it.Valid(); it.Next() {
		key := it.Item().Key()
		id := string(key[len(opts.Prefix):])
		a, err := bs.readAsset(txn, id)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}

func (bs *BadgerStore) readAsset(txn *badger.Txn, id string) (*ledger.Asset, error) {
	key := []byte(prefixAssetPayload + id)
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var a ledger.Asset
	err = common.MsgpackUnmarshal(val, &a)
	return &a, err
}
