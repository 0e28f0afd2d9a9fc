package main

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/tokenparty/tparty-client/internal/core/application"
	"github.com/tokenparty/tparty-client/internal/core/domain"
)

// Message commands delegate unsigned-transaction composition to the ledger
// server, then hand the result to the signing orchestrator unless --unsigned
// was given.

var unsignedFlag = &cli.BoolFlag{
	Name:  "unsigned",
	Usage: "print the unsigned transaction hex, do not sign or broadcast",
}

var sourceFlag = &cli.StringFlag{
	Name:     "source",
	Usage:    "the source address",
	Required: true,
}

var send = cli.Command{
	Name:  "send",
	Usage: "create and broadcast a send message",
	Flags: []cli.Flag{
		sourceFlag,
		&cli.StringFlag{Name: "destination", Usage: "the destination address", Required: true},
		&cli.StringFlag{Name: "asset", Usage: "the asset to send", Required: true},
		&cli.Int64Flag{Name: "quantity", Usage: "the quantity to send, in base units", Required: true},
		unsignedFlag,
	},
	Action: func(ctx *cli.Context) error {
		return composeAndSign(ctx, "send", map[string]interface{}{
			"source":      ctx.String("source"),
			"destination": ctx.String("destination"),
			"asset":       ctx.String("asset"),
			"quantity":    ctx.Int64("quantity"),
		})
	},
}

var order = cli.Command{
	Name:  "order",
	Usage: "create and broadcast an order message",
	Flags: []cli.Flag{
		sourceFlag,
		&cli.StringFlag{Name: "give-asset", Usage: "the asset to sell", Required: true},
		&cli.Int64Flag{Name: "give-quantity", Usage: "the quantity to give, in base units", Required: true},
		&cli.StringFlag{Name: "get-asset", Usage: "the asset to buy", Required: true},
		&cli.Int64Flag{Name: "get-quantity", Usage: "the quantity to receive, in base units", Required: true},
		&cli.Int64Flag{Name: "expiration", Usage: "the number of blocks the order is valid for", Required: true},
		unsignedFlag,
	},
	Action: func(ctx *cli.Context) error {
		return composeAndSign(ctx, "order", map[string]interface{}{
			"source":        ctx.String("source"),
			"give_asset":    ctx.String("give-asset"),
			"give_quantity": ctx.Int64("give-quantity"),
			"get_asset":     ctx.String("get-asset"),
			"get_quantity":  ctx.Int64("get-quantity"),
			"expiration":    ctx.Int64("expiration"),
		})
	},
}

var btcpay = cli.Command{
	Name:  "btcpay",
	Usage: "settle an order match you owe coins for",
	Flags: []cli.Flag{
		sourceFlag,
		&cli.StringFlag{
			Name:     "order-match-id",
			Usage:    "the composite identifier of the matched orders",
			Required: true,
		},
		unsignedFlag,
	},
	Action: func(ctx *cli.Context) error {
		return composeAndSign(ctx, "btcpay", map[string]interface{}{
			"source":         ctx.String("source"),
			"order_match_id": ctx.String("order-match-id"),
		})
	},
}

var issuance = cli.Command{
	Name:  "issuance",
	Usage: "issue a new asset, issue more of an existing asset or transfer its ownership",
	Flags: []cli.Flag{
		sourceFlag,
		&cli.StringFlag{Name: "asset", Usage: "the name of the asset", Required: true},
		&cli.Int64Flag{Name: "quantity", Usage: "the quantity to issue, in base units"},
		&cli.StringFlag{Name: "description", Usage: "a description of the asset", Required: true},
		&cli.BoolFlag{Name: "divisible", Usage: "whether the asset is divisible"},
		&cli.StringFlag{Name: "transfer-destination", Usage: "for transfer of issuance rights"},
		unsignedFlag,
	},
	Action: func(ctx *cli.Context) error {
		return composeAndSign(ctx, "issuance", map[string]interface{}{
			"source":               ctx.String("source"),
			"asset":                ctx.String("asset"),
			"quantity":             ctx.Int64("quantity"),
			"description":          ctx.String("description"),
			"divisible":            ctx.Bool("divisible"),
			"transfer_destination": ctx.String("transfer-destination"),
		})
	},
}

var broadcast = cli.Command{
	Name:  "broadcast",
	Usage: "broadcast textual and numerical information to the network",
	Flags: []cli.Flag{
		sourceFlag,
		&cli.StringFlag{Name: "text", Usage: "the textual part of the broadcast", Required: true},
		&cli.Float64Flag{Name: "value", Usage: "numerical value of the broadcast", Value: -1},
		&cli.Int64Flag{Name: "fee-fraction", Usage: "the fraction of bets on this feed that go to its operator, in base units"},
		unsignedFlag,
	},
	Action: func(ctx *cli.Context) error {
		return composeAndSign(ctx, "broadcast", map[string]interface{}{
			"source":           ctx.String("source"),
			"text":             ctx.String("text"),
			"value":            ctx.Float64("value"),
			"fee_fraction_int": ctx.Int64("fee-fraction"),
			"timestamp":        time.Now().Unix(),
		})
	},
}

var bet = cli.Command{
	Name:  "bet",
	Usage: "offer to make a bet on the value of a feed",
	Flags: []cli.Flag{
		sourceFlag,
		&cli.StringFlag{Name: "feed-address", Usage: "the address publishing the feed to bet on", Required: true},
		&cli.StringFlag{Name: "bet-type", Usage: "one of: BullCFD, BearCFD, Equal, NotEqual", Required: true},
		&cli.TimestampFlag{Name: "deadline", Usage: "when the bet should be settled (RFC3339)", Layout: time.RFC3339, Required: true},
		&cli.Int64Flag{Name: "wager", Usage: "the quantity to wager, in base units", Required: true},
		&cli.Int64Flag{Name: "counterwager", Usage: "the minimum quantity to be wagered against you, in base units", Required: true},
		&cli.Float64Flag{Name: "target-value", Usage: "target value for Equal/NotEqual bets"},
		&cli.Int64Flag{Name: "leverage", Usage: "leverage, as a fraction of 5040", Value: domain.LeverageUnit},
		&cli.Int64Flag{Name: "expiration", Usage: "the number of blocks the bet is valid for", Required: true},
		unsignedFlag,
	},
	Action: func(ctx *cli.Context) error {
		betType, err := betTypeID(ctx.String("bet-type"))
		if err != nil {
			return err
		}
		return composeAndSign(ctx, "bet", map[string]interface{}{
			"source":                ctx.String("source"),
			"feed_address":          ctx.String("feed-address"),
			"bet_type":              betType,
			"deadline":              ctx.Timestamp("deadline").Unix(),
			"wager_quantity":        ctx.Int64("wager"),
			"counterwager_quantity": ctx.Int64("counterwager"),
			"target_value":          ctx.Float64("target-value"),
			"leverage":              ctx.Int64("leverage"),
			"expiration":            ctx.Int64("expiration"),
		})
	},
}

var dividend = cli.Command{
	Name:  "dividend",
	Usage: "pay dividends to the holders of an asset",
	Flags: []cli.Flag{
		sourceFlag,
		&cli.Int64Flag{Name: "quantity-per-unit", Usage: "the quantity paid per whole unit held, in base units", Required: true},
		&cli.StringFlag{Name: "asset", Usage: "the asset whose holders get paid", Required: true},
		&cli.StringFlag{Name: "dividend-asset", Usage: "the asset the dividends are paid in", Required: true},
		unsignedFlag,
	},
	Action: func(ctx *cli.Context) error {
		return composeAndSign(ctx, "dividend", map[string]interface{}{
			"source":            ctx.String("source"),
			"quantity_per_unit": ctx.Int64("quantity-per-unit"),
			"asset":             ctx.String("asset"),
			"dividend_asset":    ctx.String("dividend-asset"),
		})
	},
}

var burn = cli.Command{
	Name:  "burn",
	Usage: "destroy coins to earn tokens, during the burn window",
	Flags: []cli.Flag{
		sourceFlag,
		&cli.Int64Flag{Name: "quantity", Usage: "the quantity to burn, in base units", Required: true},
		unsignedFlag,
	},
	Action: func(ctx *cli.Context) error {
		return composeAndSign(ctx, "burn", map[string]interface{}{
			"source":   ctx.String("source"),
			"quantity": ctx.Int64("quantity"),
		})
	},
}

var cancel = cli.Command{
	Name:  "cancel",
	Usage: "cancel an open order or bet you created",
	Flags: []cli.Flag{
		sourceFlag,
		&cli.StringFlag{Name: "offer-hash", Usage: "the transaction hash of the order or bet", Required: true},
		unsignedFlag,
	},
	Action: func(ctx *cli.Context) error {
		return composeAndSign(ctx, "cancel", map[string]interface{}{
			"source":     ctx.String("source"),
			"offer_hash": ctx.String("offer-hash"),
		})
	},
}

func composeAndSign(
	ctx *cli.Context, message string, params map[string]interface{},
) error {
	svc := buildServices()

	unsignedHex, err := svc.ledger.Compose(ctx.Context, message, params)
	if err != nil {
		return err
	}

	if ctx.Bool("unsigned") {
		fmt.Println(unsignedHex)
		return nil
	}

	outcome := svc.signer.SignAndBroadcast(ctx.Context, application.SigningRequest{
		UnsignedTxHex: unsignedHex,
		Source:        ctx.String("source"),
	})
	switch outcome.Status {
	case application.StatusBroadcast:
		fmt.Println(outcome.TxID)
		return nil
	case application.StatusDeferredMultisig:
		return nil
	case application.StatusDeclined:
		log.Info("aborted by operator")
		return nil
	default:
		return outcome.Err
	}
}

func betTypeID(name string) (int, error) {
	for id, typeName := range domain.BetTypeName {
		if typeName == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown bet type %s", name)
}
