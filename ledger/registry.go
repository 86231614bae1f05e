package ledger

import (
	"context"
	"fmt"

	"github.com/MixinNetwork/mixin/logger"
)

// registry is the per-asset capability over the shared store, bound to one
// asset id at resolve time.
type registry struct {
	store   Store
	assetId string
}

func (r *registry) ReadName(ctx context.Context) (string, error) {
	a, err := r.read()
	if err != nil {
		return "", err
	}
	return a.Name, nil
}

func (r *registry) ReadOwner(ctx context.Context) (string, error) {
	a, err := r.read()
	if err != nil {
		return "", err
	}
	return a.Owner, nil
}

func (r *registry) ReadAsset(ctx context.Context) ([]byte, error) {
	a, err := r.read()
	if err != nil {
		return nil, err
	}
	return a.Data, nil
}

func (r *registry) TransferOwnership(ctx context.Context, newOwner string) error {
	if newOwner == "" {
		return fmt.Errorf("invalid owner")
	}
	a, err := r.read()
	if err != nil {
		return err
	}
	old := a.Owner
	a.Owner = newOwner
	err = r.store.WriteAsset(a)
	if err != nil {
		return err
	}
	logger.Verbosef("registry.TransferOwnership(%s) => %s to %s\n", r.assetId, old, newOwner)
	return nil
}

func (r *registry) read() (*Asset, error) {
	a, err := r.store.ReadAsset(r.assetId)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("asset %s not found", r.assetId)
	}
	return a, nil
}
