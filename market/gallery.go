package market

import (
	"context"
	"sync"
)

// Gallery owns the live item controllers, one per displayed asset, and the
// collaborators they share. Controllers run their sequences independently;
// only the map itself is guarded here.
type Gallery struct {
	viewer   string
	resolver RegistryResolver
	ledger   Ledger
	payment  Payment

	mutex sync.Mutex
	items map[string]*ItemController
}

func NewGallery(viewer string, resolver RegistryResolver, ledger Ledger, payment Payment) *Gallery {
	return &Gallery{
		viewer:   viewer,
		resolver: resolver,
		ledger:   ledger,
		payment:  payment,
		items:    make(map[string]*ItemController),
	}
}

// Item returns the controller for an asset id, creating it in the given
// display mode when the card is not on the page yet.
func (g *Gallery) Item(ctx context.Context, assetId, mode string) (*ItemController, error) {
	g.mutex.Lock()
	if old := g.items[assetId]; old != nil {
		g.mutex.Unlock()
		return old, nil
	}
	g.mutex.Unlock()

	registry, err := g.resolver.Resolve(ctx, assetId)
	if err != nil {
		return nil, err
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()
	if old := g.items[assetId]; old != nil {
		return old, nil
	}
	ic := NewItemController(assetId, mode, g.viewer, registry, g.ledger, g.payment)
	g.items[assetId] = ic
	return ic, nil
}

// Remove tears a card down; a controller discarded here never applies a
// late result.
func (g *Gallery) Remove(assetId string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if ic := g.items[assetId]; ic != nil {
		ic.Close()
		delete(g.items, assetId)
	}
}

func (g *Gallery) Items() []*ItemController {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	items := make([]*ItemController, 0, len(g.items))
	for _, ic := range g.items {
		items = append(items, ic)
	}
	return items
}
