package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/MixinNetwork/mixin/logger"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/openmarket/nfm/market"
)

const accountPropertyKey = "MARKET:ACCOUNT:ID"

// Marketplace tracks listings, prices and purchase completion, and mints
// new assets. It also resolves per-asset registry instances backed by the
// same store.
type Marketplace struct {
	store   Store
	account string
}

func NewMarketplace(store Store) (*Marketplace, error) {
	val, err := store.ReadProperty([]byte(accountPropertyKey))
	if err != nil {
		return nil, err
	}
	account := string(val)
	if account == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		account = id.String()
		err = store.WriteProperty([]byte(accountPropertyKey), []byte(account))
		if err != nil {
			return nil, err
		}
		logger.Printf("Marketplace account %s\n", account)
	}
	return &Marketplace{store: store, account: account}, nil
}

func (m *Marketplace) ReadMarketplaceAccount(ctx context.Context) (string, error) {
	return m.account, nil
}

func (m *Marketplace) Resolve(ctx context.Context, assetId string) (market.Registry, error) {
	a, err := m.store.ReadAsset(assetId)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("asset %s not found", assetId)
	}
	return &registry{store: m.store, assetId: assetId}, nil
}

func (m *Marketplace) Mint(ctx context.Context, data []byte, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("invalid name")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("invalid payload")
	}
	minter, err := actorFromContext(ctx)
	if err != nil {
		return "", err
	}
	hash := crypto.NewHash(data)
	old, err := m.store.ReadAssetIdByHash(hash[:])
	if err != nil {
		return "", err
	}
	if old != "" {
		return "", fmt.Errorf("asset already minted as %s", old)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	a := &Asset{
		Id:        id.String(),
		Name:      name,
		Owner:     minter,
		Hash:      hash[:],
		Data:      data,
		CreatedAt: time.Now(),
	}
	err = m.store.WriteAsset(a)
	if err != nil {
		return "", err
	}
	logger.Verbosef("Marketplace.Mint(%s) => %s for %s\n", name, a.Id, minter)
	return a.Id, nil
}

func (m *Marketplace) IsListed(ctx context.Context, assetId string) (bool, error) {
	l, err := m.store.ReadListing(assetId)
	return l != nil, err
}

func (m *Marketplace) ReadOriginalOwner(ctx context.Context, assetId string) (string, error) {
	l, err := m.readListing(assetId)
	if err != nil {
		return "", err
	}
	return l.OriginalOwner, nil
}

func (m *Marketplace) ReadListedPrice(ctx context.Context, assetId string) (decimal.Decimal, error) {
	l, err := m.readListing(assetId)
	if err != nil {
		return decimal.Zero, err
	}
	return l.Price, nil
}

func (m *Marketplace) ListItem(ctx context.Context, assetId string, price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("invalid price %s", price)
	}
	lister, err := actorFromContext(ctx)
	if err != nil {
		return err
	}
	a, err := m.store.ReadAsset(assetId)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("asset %s not found", assetId)
	}
	if a.Owner != lister {
		return fmt.Errorf("asset %s not owned by %s", assetId, lister)
	}
	old, err := m.store.ReadListing(assetId)
	if err != nil {
		return err
	}
	if old != nil {
		return fmt.Errorf("asset %s already listed", assetId)
	}
	l := &Listing{
		AssetId:       assetId,
		OriginalOwner: a.Owner,
		Price:         price,
		CreatedAt:     time.Now(),
	}
	return m.store.WriteListing(l)
}

func (m *Marketplace) CompletePurchase(ctx context.Context, assetId, seller, buyer string) error {
	l, err := m.readListing(assetId)
	if err != nil {
		return err
	}
	if l.OriginalOwner != seller {
		return fmt.Errorf("seller mismatch %s %s", l.OriginalOwner, seller)
	}
	a, err := m.store.ReadAsset(assetId)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("asset %s not found", assetId)
	}
	// The escrow invariant: a listed asset must be held by the
	// marketplace account before it can change hands.
	if a.Owner != m.account {
		return fmt.Errorf("asset %s not in escrow", assetId)
	}
	a.Owner = buyer
	err = m.store.WriteAsset(a)
	if err != nil {
		return err
	}
	err = m.store.DeleteListing(assetId)
	if err != nil {
		return err
	}
	logger.Verbosef("Marketplace.CompletePurchase(%s) => %s to %s\n", assetId, seller, buyer)
	return nil
}

// ListOwnedAssets backs the collection page: every asset whose registry
// owner is the account, plus the ones it listed and escrowed away.
func (m *Marketplace) ListOwnedAssets(ctx context.Context, owner string) ([]string, error) {
	assets, err := m.store.ListAssets()
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, a := range assets {
		if a.Owner == owner {
			ids = append(ids, a.Id)
			continue
		}
		if a.Owner != m.account {
			continue
		}
		l, err := m.store.ReadListing(a.Id)
		if err != nil {
			return nil, err
		}
		if l != nil && l.OriginalOwner == owner {
			ids = append(ids, a.Id)
		}
	}
	return ids, nil
}

// ListListedAssets backs the discover page.
func (m *Marketplace) ListListedAssets(ctx context.Context) ([]string, error) {
	listings, err := m.store.ListListings()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(listings))
	for i, l := range listings {
		ids[i] = l.AssetId
	}
	return ids, nil
}

func (m *Marketplace) readListing(assetId string) (*Listing, error) {
	l, err := m.store.ReadListing(assetId)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("asset %s not listed", assetId)
	}
	return l, nil
}
