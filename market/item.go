package market

import (
	"context"
	"fmt"
	"sync"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/shopspring/decimal"
)

const (
	ItemStateLoading = 10
	ItemStateReady   = 11
	ItemStatePricing = 12
	ItemStateSelling = 13
	ItemStateBuying  = 14
	ItemStateHidden  = 15
)

// ItemController drives one rendered card. Each sequence (Load, Sell, Buy)
// runs to completion or failure before the instance accepts the next
// trigger; the state machine rejects anything else. Instances share no
// mutable state with each other.
type ItemController struct {
	assetId  string
	mode     string
	viewer   string
	registry Registry
	ledger   Ledger
	payment  Payment

	mutex  sync.Mutex
	state  int
	loaded bool
	closed bool
	view   ItemView
}

func NewItemController(assetId, mode, viewer string, registry Registry, ledger Ledger, payment Payment) *ItemController {
	return &ItemController{
		assetId:  assetId,
		mode:     mode,
		viewer:   viewer,
		registry: registry,
		ledger:   ledger,
		payment:  payment,
		state:    ItemStateLoading,
		view:     ItemView{AssetId: assetId},
	}
}

func (ic *ItemController) AssetId() string {
	return ic.assetId
}

func (ic *ItemController) State() int {
	ic.mutex.Lock()
	defer ic.mutex.Unlock()
	return ic.state
}

// View returns a copy of the current render input.
func (ic *ItemController) View() ItemView {
	ic.mutex.Lock()
	defer ic.mutex.Unlock()
	return ic.view
}

// Close tears the card down, e.g. when it scrolls out of the page. Any
// sequence still in flight discards its result instead of mutating a
// stale view.
func (ic *ItemController) Close() {
	ic.mutex.Lock()
	defer ic.mutex.Unlock()
	ic.closed = true
}

// Load fetches the asset from its registry and decides which action the
// viewer gets, once per card.
func (ic *ItemController) Load(ctx context.Context) error {
	ic.mutex.Lock()
	if ic.closed || ic.loaded || ic.state != ItemStateLoading {
		ic.mutex.Unlock()
		return fmt.Errorf("load rejected in state %d", ic.state)
	}
	ic.loaded = true
	ic.mutex.Unlock()

	name, owner, image, err := ic.fetchAsset(ctx)
	if err != nil {
		ic.apply(func() { ic.loaded = false })
		return err
	}

	view := ItemView{AssetId: ic.assetId, Name: name, Owner: owner, Image: image}
	switch ic.mode {
	case ModeCollection:
		err = ic.loadCollection(ctx, &view)
	case ModeDiscover:
		err = ic.loadDiscover(ctx, &view)
	default:
		err = fmt.Errorf("invalid display mode %s", ic.mode)
	}
	if err != nil {
		ic.apply(func() { ic.loaded = false })
		return err
	}

	ic.apply(func() {
		ic.state = ItemStateReady
		ic.view = view
	})
	logger.Verbosef("ItemController.Load(%s, %s) => sell %t buy %t\n", ic.assetId, ic.mode, view.SellEnabled, view.BuyEnabled)
	return nil
}

func (ic *ItemController) fetchAsset(ctx context.Context) (string, string, string, error) {
	name, err := ic.registry.ReadName(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("registry name: %w", err)
	}
	owner, err := ic.registry.ReadOwner(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("registry owner: %w", err)
	}
	data, err := ic.registry.ReadAsset(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("registry asset: %w", err)
	}
	return name, owner, imageURI(data), nil
}

func (ic *ItemController) loadCollection(ctx context.Context, view *ItemView) error {
	listed, err := ic.ledger.IsListed(ctx, ic.assetId)
	if err != nil {
		return fmt.Errorf("ledger listed: %w", err)
	}
	if !listed {
		view.SellEnabled = true
		return nil
	}
	market, err := ic.ledger.ReadMarketplaceAccount(ctx)
	if err != nil {
		return fmt.Errorf("ledger account: %w", err)
	}
	view.Owner = market
	view.Blurred = true
	view.Status = StatusListed
	return nil
}

func (ic *ItemController) loadDiscover(ctx context.Context, view *ItemView) error {
	original, err := ic.ledger.ReadOriginalOwner(ctx, ic.assetId)
	if err != nil {
		return fmt.Errorf("ledger owner: %w", err)
	}
	view.BuyEnabled = original != ic.viewer
	price, err := ic.ledger.ReadListedPrice(ctx, ic.assetId)
	if err != nil {
		return fmt.Errorf("ledger price: %w", err)
	}
	view.Price = price
	view.HasPrice = true
	return nil
}

// RequestSell opens the price input. The listing happens on ConfirmSell.
func (ic *ItemController) RequestSell() error {
	ic.mutex.Lock()
	defer ic.mutex.Unlock()
	if ic.closed || ic.state != ItemStateReady || !ic.view.SellEnabled {
		return fmt.Errorf("sell rejected in state %d", ic.state)
	}
	ic.state = ItemStatePricing
	ic.view.PriceInput = true
	return nil
}

// ConfirmSell lists the asset at the entered price, then escrows registry
// ownership to the marketplace account. The ledger call deliberately runs
// first: a failed escrow leaves a retryable listed-but-not-escrowed asset,
// the reverse order could strand it.
func (ic *ItemController) ConfirmSell(ctx context.Context, input string) error {
	price, err := decimal.NewFromString(input)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("price %q is not a number", input)}
	}
	if !price.IsPositive() {
		return &ValidationError{Reason: fmt.Sprintf("price %s must be positive", price)}
	}

	ic.mutex.Lock()
	if ic.closed || ic.state != ItemStatePricing {
		ic.mutex.Unlock()
		return fmt.Errorf("confirm rejected in state %d", ic.state)
	}
	ic.state = ItemStateSelling
	ic.view.Busy = true
	ic.mutex.Unlock()

	err = ic.ledger.ListItem(ctx, ic.assetId, price)
	if err != nil {
		ic.apply(func() {
			ic.state = ItemStatePricing
			ic.view.Busy = false
		})
		return fmt.Errorf("ledger list: %w", err)
	}

	market, err := ic.ledger.ReadMarketplaceAccount(ctx)
	if err == nil {
		err = ic.registry.TransferOwnership(ctx, market)
	}
	if err != nil {
		ic.apply(func() {
			ic.state = ItemStateReady
			ic.view.Busy = false
			ic.view.PriceInput = false
			ic.view.SellEnabled = false
			ic.view.Status = StatusListed
		})
		ie := &InconsistencyError{AssetId: ic.assetId, Step: "escrow-transfer", Err: err}
		logger.Printf("ItemController.ConfirmSell(%s) => %v\n", ic.assetId, ie)
		return ie
	}

	ic.apply(func() {
		ic.state = ItemStateReady
		ic.view.Busy = false
		ic.view.PriceInput = false
		ic.view.SellEnabled = false
		ic.view.Owner = market
		ic.view.Status = StatusListed
	})
	logger.Verbosef("ItemController.ConfirmSell(%s, %s) => listed\n", ic.assetId, price)
	return nil
}

// Buy pays the seller and completes the purchase with the ledger. The
// payment deliberately runs first, same policy as ConfirmSell.
func (ic *ItemController) Buy(ctx context.Context) error {
	ic.mutex.Lock()
	if ic.closed || ic.state != ItemStateReady || !ic.view.BuyEnabled {
		ic.mutex.Unlock()
		return fmt.Errorf("buy rejected in state %d", ic.state)
	}
	ic.state = ItemStateBuying
	ic.view.Busy = true
	ic.mutex.Unlock()

	seller, price, err := ic.resolveOrder(ctx)
	if err == nil {
		err = ic.payment.Transfer(ctx, seller, price)
		if err != nil {
			err = fmt.Errorf("payment transfer: %w", err)
		}
	}
	if err != nil {
		ic.apply(func() {
			ic.state = ItemStateReady
			ic.view.Busy = false
		})
		return err
	}

	err = ic.ledger.CompletePurchase(ctx, ic.assetId, seller, ic.viewer)
	if err != nil {
		ic.apply(func() {
			ic.state = ItemStateReady
			ic.view.Busy = false
		})
		ie := &InconsistencyError{AssetId: ic.assetId, Step: "purchase-completion", Err: err}
		logger.Printf("ItemController.Buy(%s) => %v\n", ic.assetId, ie)
		return ie
	}

	ic.apply(func() {
		ic.state = ItemStateHidden
		ic.view.Busy = false
		ic.view.BuyEnabled = false
		ic.view.Hidden = true
	})
	logger.Verbosef("ItemController.Buy(%s) => purchased by %s\n", ic.assetId, ic.viewer)
	return nil
}

func (ic *ItemController) resolveOrder(ctx context.Context) (string, decimal.Decimal, error) {
	seller, err := ic.ledger.ReadOriginalOwner(ctx, ic.assetId)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("ledger owner: %w", err)
	}
	price, err := ic.ledger.ReadListedPrice(ctx, ic.assetId)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("ledger price: %w", err)
	}
	return seller, price, nil
}

// apply mutates the controller unless it was torn down while the remote
// call was outstanding, in which case the result is discarded.
func (ic *ItemController) apply(fn func()) {
	ic.mutex.Lock()
	defer ic.mutex.Unlock()
	if ic.closed {
		return
	}
	fn()
}
