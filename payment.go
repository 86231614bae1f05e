package main

import (
	"context"
	"fmt"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

const (
	SettlementLocal = "local"
	SettlementMixin = "mixin"
)

// MixinPayment settles purchases with transfers on the Mixin network,
// denominated in the configured payment asset.
type MixinPayment struct {
	client  *mixin.Client
	assetId string
	pin     string
}

func NewMixinPayment(conf *Configuration) (*MixinPayment, error) {
	if conf.Market.PaymentAssetId == "" {
		return nil, fmt.Errorf("missing payment asset id")
	}
	s := &mixin.Keystore{
		ClientID:   conf.App.ClientId,
		SessionID:  conf.App.SessionId,
		PrivateKey: conf.App.PrivateKey,
		PinToken:   conf.App.PinToken,
	}
	client, err := mixin.NewFromKeystore(s)
	if err != nil {
		return nil, err
	}
	return &MixinPayment{
		client:  client,
		assetId: conf.Market.PaymentAssetId,
		pin:     conf.App.PIN,
	}, nil
}

func (mp *MixinPayment) Transfer(ctx context.Context, recipient string, amount decimal.Decimal) error {
	traceId, err := uuid.NewV4()
	if err != nil {
		return err
	}
	input := &mixin.TransferInput{
		AssetID:    mp.assetId,
		OpponentID: recipient,
		Amount:     amount,
		TraceID:    traceId.String(),
		Memo:       "NFM:PURCHASE",
	}
	_, err = mp.client.Transfer(ctx, input, mp.pin)
	return err
}
