package market

import (
	"encoding/base64"
	"net/http"

	"github.com/shopspring/decimal"
)

const (
	ModeCollection = "collection"
	ModeDiscover   = "discover"
)

const (
	StatusListed = "Listed"
)

// ItemView is the render input for one card. Rendering is a pure function
// of this value; the controller owns all mutation.
type ItemView struct {
	AssetId  string
	Name     string
	Owner    string
	Image    string
	Blurred  bool
	Status   string
	Price    decimal.Decimal
	HasPrice bool

	SellEnabled bool
	BuyEnabled  bool
	PriceInput  bool
	Busy        bool
	Hidden      bool
}

// imageURI packs raw asset bytes into a displayable data URI, the media
// type sniffed from the payload.
func imageURI(data []byte) string {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
