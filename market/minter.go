package market

import (
	"context"
	"fmt"
	"sync"

	"github.com/MixinNetwork/mixin/logger"
)

// MinterController collects the mint form input and, on a successful mint,
// hands the fresh asset off to an item controller in collection mode. One
// mint runs at a time; a failed submission can simply be retried.
type MinterController struct {
	gallery *Gallery

	mutex   sync.Mutex
	minting bool
}

func NewMinterController(gallery *Gallery) *MinterController {
	return &MinterController{gallery: gallery}
}

func (mc *MinterController) Minting() bool {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	return mc.minting
}

func (mc *MinterController) Mint(ctx context.Context, name string, image []byte) (*ItemController, error) {
	if name == "" {
		return nil, &ValidationError{Reason: "name is required"}
	}
	if len(image) == 0 {
		return nil, &ValidationError{Reason: "image is required"}
	}

	mc.mutex.Lock()
	if mc.minting {
		mc.mutex.Unlock()
		return nil, fmt.Errorf("mint already in progress")
	}
	mc.minting = true
	mc.mutex.Unlock()
	defer func() {
		mc.mutex.Lock()
		mc.minting = false
		mc.mutex.Unlock()
	}()

	assetId, err := mc.gallery.ledger.Mint(ctx, image, name)
	if err != nil {
		return nil, fmt.Errorf("ledger mint: %w", err)
	}
	logger.Verbosef("MinterController.Mint(%s) => %s\n", name, assetId)

	// The minter owns the asset and it is unlisted, so the card renders
	// in collection mode.
	return mc.gallery.Item(ctx, assetId, ModeCollection)
}
