package main

import (
	"os"

	"github.com/pelletier/go-toml"
)

type Configuration struct {
	App struct {
		ClientId   string `toml:"client-id"`
		SessionId  string `toml:"session-id"`
		PrivateKey string `toml:"private-key"`
		PinToken   string `toml:"pin-token"`
		PIN        string `toml:"pin"`
	} `toml:"app"`
	Market struct {
		ViewerId       string `toml:"viewer-id"`
		Settlement     string `toml:"settlement"`
		PaymentAssetId string `toml:"payment-asset-id"`
	} `toml:"market"`
}

// Setup reads the TOML configuration. A missing file falls back to local
// settlement with a viewer id persisted in the store.
func Setup(path string) (*Configuration, error) {
	var conf Configuration
	conf.Market.Settlement = SettlementLocal

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &conf, nil
	} else if err != nil {
		return nil, err
	}
	err = toml.Unmarshal(data, &conf)
	if err != nil {
		return nil, err
	}
	if conf.Market.Settlement == "" {
		conf.Market.Settlement = SettlementLocal
	}
	return &conf, nil
}
