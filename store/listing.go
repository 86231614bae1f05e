package store

import (
	"github.com/MixinNetwork/mixin/common"
	"github.com/dgraph-io/badger/v3"
	"github.com/openmarket/nfm/ledger"
)

const prefixListingPayload = "LISTING:PAYLOAD:"

func (bs *BadgerStore) WriteListing(l *ledger.Listing) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		key := []byte(prefixListingPayload + l.AssetId)
		val := common.MsgpackMarshalPanic(l)
		return txn.Set(key, val)
	})
}

func (bs *BadgerStore) ReadListing(assetId string) (*ledger.Listing, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readListing(txn, assetId)
}

func (bs *BadgerStore) DeleteListing(assetId string) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		key := []byte(prefixListingPayload + assetId)
		return txn.Delete(key)
	})
}

func (bs *BadgerStore) ListListings() ([]*ledger.Listing, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefixListingPayload)
	it := txn.NewIterator(opts)
	defer it.Close()

	var listings []*ledger.Listing
	for it.Seek(opts.Prefix); it.Valid(); it.Next() {
		key := it.Item().Key()
		id := string(key[len(opts.Prefix):])
		l, err := bs.readListing(txn, id)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func (bs *BadgerStore) readListing(txn *badger.Txn, assetId string) (*ledger.Listing, error) {
	key := []byte(prefixListingPayload + assetId)
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
	var l ledger.Listing
	err = common.MsgpackUnmarshal(val, &l)
	return &l, err
}
