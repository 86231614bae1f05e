package market

import (
	"context"

	"github.com/shopspring/decimal"
)

// Registry is the per-asset capability. A Registry value is already bound
// to one asset id, so the reads take no identifier.
type Registry interface {
	ReadName(ctx context.Context) (string, error)
	ReadOwner(ctx context.Context) (string, error)
	ReadAsset(ctx context.Context) ([]byte, error)
	TransferOwnership(ctx context.Context, newOwner string) error
}

// RegistryResolver dials the registry instance for an asset id.
type RegistryResolver interface {
	Resolve(ctx context.Context, assetId string) (Registry, error)
}

// Ledger is the marketplace-wide capability tracking listings, prices and
// purchase completion.
type Ledger interface {
	IsListed(ctx context.Context, assetId string) (bool, error)
	ReadOriginalOwner(ctx context.Context, assetId string) (string, error)
	ReadListedPrice(ctx context.Context, assetId string) (decimal.Decimal, error)
	ListItem(ctx context.Context, assetId string, price decimal.Decimal) error
	CompletePurchase(ctx context.Context, assetId, seller, buyer string) error
	Mint(ctx context.Context, data []byte, name string) (string, error)
	ReadMarketplaceAccount(ctx context.Context) (string, error)
}

// Payment moves funds from the viewer's account to a recipient.
type Payment interface {
	Transfer(ctx context.Context, recipient string, amount decimal.Decimal) error
}
