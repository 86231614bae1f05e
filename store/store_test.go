package store

import (
	"context"
	"testing"
	"time"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/openmarket/nfm/ledger"
	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	bs, err := OpenBadger(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { bs.Close() })
	return bs
}

func TestBadgerProperty(t *testing.T) {
	t.Parallel()

	bs := newTestStore(t)
	val, err := bs.ReadProperty([]byte("missing"))
	if err != nil || val != nil {
		t.Fatalf("missing property %v %v", val, err)
	}
	err = bs.WriteProperty([]byte("viewer"), []byte("viewer-account"))
	if err != nil {
		t.Fatal(err)
	}
	val, err = bs.ReadProperty([]byte("viewer"))
	if err != nil || string(val) != "viewer-account" {
		t.Fatalf("property %q %v", val, err)
	}
}

func TestBadgerAsset(t *testing.T) {
	t.Parallel()

	bs := newTestStore(t)
	hash := crypto.NewHash([]byte("png-bytes"))
	a := &ledger.Asset{
		Id:        "asset-a1",
		Name:      "CryptoDunk",
		Owner:     "minter-account",
		Hash:      hash[:],
		Data:      []byte("png-bytes"),
		CreatedAt: time.Now(),
	}
	err := bs.WriteAsset(a)
	if err != nil {
		t.Fatal(err)
	}

	got, err := bs.ReadAsset("asset-a1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Name != a.Name || got.Owner != a.Owner || string(got.Data) != "png-bytes" {
		t.Fatalf("asset %+v", got)
	}

	id, err := bs.ReadAssetIdByHash(hash[:])
	if err != nil || id != "asset-a1" {
		t.Fatalf("hash lookup %q %v", id, err)
	}
	id, err = bs.ReadAssetIdByHash([]byte("other-hash"))
	if err != nil || id != "" {
		t.Fatalf("missing hash lookup %q %v", id, err)
	}

	missing, err := bs.ReadAsset("asset-unknown")
	if err != nil || missing != nil {
		t.Fatalf("missing asset %v %v", missing, err)
	}

	// Ownership updates overwrite in place.
	got.Owner = "buyer-account"
	err = bs.WriteAsset(got)
	if err != nil {
		t.Fatal(err)
	}
	got, err = bs.ReadAsset("asset-a1")
	if err != nil || got.Owner != "buyer-account" {
		t.Fatalf("owner %q %v", got.Owner, err)
	}

	assets, err := bs.ListAssets()
	if err != nil || len(assets) != 1 {
		t.Fatalf("assets %v %v", assets, err)
	}
}

func TestBadgerListing(t *testing.T) {
	t.Parallel()

	bs := newTestStore(t)
	l := &ledger.Listing{
		AssetId:       "asset-a1",
		OriginalOwner: "seller-account",
		Price:         decimal.RequireFromString("50"),
		CreatedAt:     time.Now(),
	}
	err := bs.WriteListing(l)
	if err != nil {
		t.Fatal(err)
	}

	got, err := bs.ReadListing("asset-a1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.OriginalOwner != "seller-account" || got.Price.String() != "50" {
		t.Fatalf("listing %+v", got)
	}

	listings, err := bs.ListListings()
	if err != nil || len(listings) != 1 {
		t.Fatalf("listings %v %v", listings, err)
	}

	err = bs.DeleteListing("asset-a1")
	if err != nil {
		t.Fatal(err)
	}
	got, err = bs.ReadListing("asset-a1")
	if err != nil || got != nil {
		t.Fatalf("deleted listing %v %v", got, err)
	}

	// Deleting a cleared listing stays silent.
	err = bs.DeleteListing("asset-a1")
	if err != nil {
		t.Fatal(err)
	}
}

func TestBadgerBalance(t *testing.T) {
	t.Parallel()

	bs := newTestStore(t)
	balance, err := bs.ReadBalance("buyer-account")
	if err != nil || !balance.IsZero() {
		t.Fatalf("fresh balance %s %v", balance, err)
	}
	err = bs.WriteBalance("buyer-account", decimal.RequireFromString("25.5"))
	if err != nil {
		t.Fatal(err)
	}
	balance, err = bs.ReadBalance("buyer-account")
	if err != nil || balance.String() != "25.5" {
		t.Fatalf("balance %s %v", balance, err)
	}
}
