package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/openmarket/nfm/ledger"
	"github.com/openmarket/nfm/market"
	"github.com/openmarket/nfm/store"
	"github.com/shopspring/decimal"
)

const viewerPropertyKey = "MARKET:VIEWER:ID"

func main() {
	ctx := context.Background()

	bp := flag.String("d", "~/.nfm/data", "database directory path")
	cp := flag.String("c", "~/.nfm/config.toml", "configuration file path")
	flag.Parse()

	conf, err := Setup(expandPath(*cp))
	if err != nil {
		panic(err)
	}

	db, err := store.OpenBadger(ctx, expandPath(*bp))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	mkt, err := ledger.NewMarketplace(db)
	if err != nil {
		panic(err)
	}
	viewer, err := viewerId(conf, db)
	if err != nil {
		panic(err)
	}
	ctx = ledger.WithActor(ctx, viewer)

	book := ledger.NewBalanceBook(db)
	var payment market.Payment = book
	if conf.Market.Settlement == SettlementMixin {
		payment, err = NewMixinPayment(conf)
		if err != nil {
			panic(err)
		}
	}

	gallery := market.NewGallery(viewer, mkt, mkt, payment)
	err = runCommand(ctx, gallery, mkt, book, viewer, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, gallery *market.Gallery, mkt *ledger.Marketplace, book *ledger.BalanceBook, viewer string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: nfm mint|sell|buy|deposit|show")
	}
	switch args[0] {
	case "mint":
		if len(args) != 3 {
			return fmt.Errorf("usage: nfm mint <name> <image-file>")
		}
		data, err := os.ReadFile(args[2])
		if err != nil {
			return err
		}
		minter := market.NewMinterController(gallery)
		ic, err := minter.Mint(ctx, args[1], data)
		if err != nil {
			return err
		}
		err = ic.Load(ctx)
		if err != nil {
			return err
		}
		printView(ic.View())
		return nil
	case "sell":
		if len(args) != 3 {
			return fmt.Errorf("usage: nfm sell <asset-id> <price>")
		}
		ic, err := loadItem(ctx, gallery, args[1], market.ModeCollection)
		if err != nil {
			return err
		}
		err = ic.RequestSell()
		if err != nil {
			return err
		}
		err = ic.ConfirmSell(ctx, args[2])
		if err != nil {
			return err
		}
		printView(ic.View())
		return nil
	case "buy":
		if len(args) != 2 {
			return fmt.Errorf("usage: nfm buy <asset-id>")
		}
		ic, err := loadItem(ctx, gallery, args[1], market.ModeDiscover)
		if err != nil {
			return err
		}
		err = ic.Buy(ctx)
		if err != nil {
			return err
		}
		printView(ic.View())
		return nil
	case "deposit":
		if len(args) != 2 {
			return fmt.Errorf("usage: nfm deposit <amount>")
		}
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return err
		}
		return book.Deposit(viewer, amount)
	case "show":
		owned, err := mkt.ListOwnedAssets(ctx, viewer)
		if err != nil {
			return err
		}
		fmt.Println("COLLECTION")
		for _, id := range owned {
			ic, err := loadItem(ctx, gallery, id, market.ModeCollection)
			if err != nil {
				return err
			}
			printView(ic.View())
		}
		listed, err := mkt.ListListedAssets(ctx)
		if err != nil {
			return err
		}
		fmt.Println("DISCOVER")
		for _, id := range listed {
			gallery.Remove(id)
			ic, err := loadItem(ctx, gallery, id, market.ModeDiscover)
			if err != nil {
				return err
			}
			printView(ic.View())
		}
		return nil
	}
	return fmt.Errorf("unknown command %s", args[0])
}

func loadItem(ctx context.Context, gallery *market.Gallery, assetId, mode string) (*market.ItemController, error) {
	ic, err := gallery.Item(ctx, assetId, mode)
	if err != nil {
		return nil, err
	}
	err = ic.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ic, nil
}

func printView(v market.ItemView) {
	line := fmt.Sprintf("%s\t%s\towner %s", v.AssetId, v.Name, v.Owner)
	if v.Status != "" {
		line = line + "\t" + v.Status
	}
	if v.HasPrice {
		line = line + "\tprice " + v.Price.String()
	}
	switch {
	case v.SellEnabled:
		line = line + "\t[sell]"
	case v.BuyEnabled:
		line = line + "\t[buy]"
	}
	fmt.Println(line)
}

func viewerId(conf *Configuration, db *store.BadgerStore) (string, error) {
	if conf.Market.ViewerId != "" {
		return conf.Market.ViewerId, nil
	}
	val, err := db.ReadProperty([]byte(viewerPropertyKey))
	if err != nil {
		return "", err
	}
	if len(val) > 0 {
		return string(val), nil
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	err = db.WriteProperty([]byte(viewerPropertyKey), []byte(id.String()))
	return id.String(), err
}

func expandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		usr, _ := user.Current()
		return filepath.Join(usr.HomeDir, p[2:])
	}
	return p
}
