package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Store interface {
	WriteProperty(key, val []byte) error
	ReadProperty(key []byte) ([]byte, error)

	WriteAsset(a *Asset) error
	ReadAsset(id string) (*Asset, error)
	ReadAssetIdByHash(hash []byte) (string, error)
	ListAssets() ([]*Asset, error)

	WriteListing(l *Listing) error
	ReadListing(assetId string) (*Listing, error)
	DeleteListing(assetId string) error
	ListListings() ([]*Listing, error)

	ReadBalance(account string) (decimal.Decimal, error)
	WriteBalance(account string, amount decimal.Decimal) error
}

// Asset is one minted token: its registry record holds the name, the
// current owner and the raw bytes, keyed by an opaque uuid.
type Asset struct {
	Id        string
	Name      string
	Owner     string
	Hash      []byte
	Data      []byte
	CreatedAt time.Time
}

// Listing marks an asset for sale. OriginalOwner is the account that
// listed it, kept so the purchase can pay the seller after the registry
// owner moved to the marketplace escrow account.
type Listing struct {
	AssetId       string
	OriginalOwner string
	Price         decimal.Decimal
	CreatedAt     time.Time
}
