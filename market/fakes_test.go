package market

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type fakeRegistry struct {
	name  string
	owner string
	data  []byte

	transfers    []string
	failTransfer bool
	onTransfer   func()
}

func (r *fakeRegistry) ReadName(ctx context.Context) (string, error) {
	return r.name, nil
}

func (r *fakeRegistry) ReadOwner(ctx context.Context) (string, error) {
	return r.owner, nil
}

func (r *fakeRegistry) ReadAsset(ctx context.Context) ([]byte, error) {
	return r.data, nil
}

func (r *fakeRegistry) TransferOwnership(ctx context.Context, newOwner string) error {
	if r.onTransfer != nil {
		r.onTransfer()
	}
	if r.failTransfer {
		return fmt.Errorf("transfer rejected")
	}
	r.transfers = append(r.transfers, newOwner)
	r.owner = newOwner
	return nil
}

type fakeResolver struct {
	registries map[string]Registry
}

func (fr *fakeResolver) Resolve(ctx context.Context, assetId string) (Registry, error) {
	r := fr.registries[assetId]
	if r == nil {
		return nil, fmt.Errorf("asset %s not found", assetId)
	}
	return r, nil
}

type listCall struct {
	assetId string
	price   decimal.Decimal
}

type fakeLedger struct {
	account  string
	listed   map[string]bool
	original map[string]string
	prices   map[string]decimal.Decimal

	listCalls     []listCall
	completeCalls int
	mintCalls     int
	mintedId      string

	failList     bool
	failComplete bool
	failMint     bool
	onComplete   func()
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		account:  "market-account",
		listed:   make(map[string]bool),
		original: make(map[string]string),
		prices:   make(map[string]decimal.Decimal),
	}
}

func (l *fakeLedger) IsListed(ctx context.Context, assetId string) (bool, error) {
	return l.listed[assetId], nil
}

func (l *fakeLedger) ReadOriginalOwner(ctx context.Context, assetId string) (string, error) {
	owner := l.original[assetId]
	if owner == "" {
		return "", fmt.Errorf("asset %s not listed", assetId)
	}
	return owner, nil
}

func (l *fakeLedger) ReadListedPrice(ctx context.Context, assetId string) (decimal.Decimal, error) {
	price, found := l.prices[assetId]
	if !found {
		return decimal.Zero, fmt.Errorf("asset %s not listed", assetId)
	}
	return price, nil
}

func (l *fakeLedger) ListItem(ctx context.Context, assetId string, price decimal.Decimal) error {
	l.listCalls = append(l.listCalls, listCall{assetId: assetId, price: price})
	if l.failList {
		return fmt.Errorf("listing rejected")
	}
	l.listed[assetId] = true
	l.prices[assetId] = price
	return nil
}

func (l *fakeLedger) CompletePurchase(ctx context.Context, assetId, seller, buyer string) error {
	if l.onComplete != nil {
		l.onComplete()
	}
	if l.failComplete {
		return fmt.Errorf("purchase rejected")
	}
	l.completeCalls += 1
	delete(l.listed, assetId)
	delete(l.original, assetId)
	delete(l.prices, assetId)
	return nil
}

func (l *fakeLedger) Mint(ctx context.Context, data []byte, name string) (string, error) {
	l.mintCalls += 1
	if l.failMint {
		return "", fmt.Errorf("mint rejected")
	}
	return l.mintedId, nil
}

func (l *fakeLedger) ReadMarketplaceAccount(ctx context.Context) (string, error) {
	return l.account, nil
}

type transferCall struct {
	recipient string
	amount    decimal.Decimal
}

type fakePayment struct {
	transfers  []transferCall
	fail       bool
	onTransfer func()
}

func (p *fakePayment) Transfer(ctx context.Context, recipient string, amount decimal.Decimal) error {
	if p.onTransfer != nil {
		p.onTransfer()
	}
	if p.fail {
		return fmt.Errorf("insufficient funds")
	}
	p.transfers = append(p.transfers, transferCall{recipient: recipient, amount: amount})
	return nil
}
