package main

import (
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tokenparty/tparty-client/internal/core/application"
)

var market = cli.Command{
	Name:  "market",
	Usage: "show an up-to-date summary of the token market",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "give-asset",
			Usage: "only show orders offering to sell this asset",
		},
		&cli.StringFlag{
			Name:  "get-asset",
			Usage: "only show orders offering to buy this asset",
		},
	},
	Action: marketAction,
}

var pending = cli.Command{
	Name:   "pending",
	Usage:  "list pending order matches awaiting payment from you",
	Action: pendingAction,
}

func marketAction(ctx *cli.Context) error {
	svc := buildServices()

	snapshot, err := fetchSnapshot(
		ctx, svc, ctx.String("give-asset"), ctx.String("get-asset"),
	)
	if err != nil {
		return err
	}

	printTable("Your Pending Order Matches",
		[]string{"Matched Order ID", "Time Left"}, matchRows(snapshot))

	orderRows := make([][]string, 0, len(snapshot.OpenOrders))
	for _, order := range snapshot.OpenOrders {
		orderRows = append(orderRows, []string{
			order.GiveRemaining.String(),
			order.GiveAsset,
			order.Price.String(),
			order.PricePair,
			order.FeeRequired.String(),
			order.FeeProvided.String(),
			strconv.FormatInt(order.TimeLeft, 10),
			order.TxHash,
		})
	}
	printTable("Open Orders", []string{
		"Give Quantity", "Give Asset", "Price", "Price Assets",
		"Required Fee", "Provided Fee", "Time Left", "Tx Hash",
	}, orderRows)

	betRows := make([][]string, 0, len(snapshot.OpenBets))
	for _, bet := range snapshot.OpenBets {
		target, leverage := "", ""
		if bet.TargetValue != nil {
			target = strconv.FormatFloat(*bet.TargetValue, 'f', -1, 64)
		}
		if bet.Leverage != nil {
			leverage = bet.Leverage.String()
		}
		betRows = append(betRows, []string{
			bet.BetType,
			bet.FeedAddress,
			bet.Deadline.Format(time.RFC3339),
			target,
			leverage,
			bet.WagerRemaining.String(),
			bet.Odds.String(),
			strconv.FormatInt(bet.TimeLeft, 10),
			bet.TxHash,
		})
	}
	printTable("Open Bets", []string{
		"Bet Type", "Feed Address", "Deadline", "Target Value", "Leverage",
		"Wager", "Odds", "Time Left", "Tx Hash",
	}, betRows)

	feedRows := make([][]string, 0, len(snapshot.Feeds))
	for _, feed := range snapshot.Feeds {
		feedRows = append(feedRows, []string{
			feed.Source,
			feed.Timestamp.Format(time.RFC3339),
			feed.Text,
			strconv.FormatFloat(feed.Value, 'f', -1, 64),
			feed.FeeFraction.String(),
		})
	}
	printTable("Feeds", []string{
		"Feed Address", "Timestamp", "Text", "Value", "Fee Fraction",
	}, feedRows)

	return nil
}

func pendingAction(ctx *cli.Context) error {
	svc := buildServices()

	snapshot, err := fetchSnapshot(ctx, svc, "", "")
	if err != nil {
		return err
	}

	printTable("", []string{"Matched Order ID", "Time Left"}, matchRows(snapshot))
	return nil
}

func fetchSnapshot(
	ctx *cli.Context, svc *services, giveAsset, getAsset string,
) (*application.MarketSnapshot, error) {
	height, err := svc.ledger.LastBlockIndex(ctx.Context)
	if err != nil {
		return nil, err
	}
	addresses, err := svc.myAddresses(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := svc.ledger.GetOrderMatchesByAddresses(
		ctx.Context, addresses, "pending",
	)
	if err != nil {
		return nil, err
	}
	orders, err := svc.ledger.GetOrders(ctx.Context, "open")
	if err != nil {
		return nil, err
	}
	bets, err := svc.ledger.GetBets(ctx.Context, "open")
	if err != nil {
		return nil, err
	}
	feeds, err := svc.ledger.GetBroadcasts(ctx.Context, "valid")
	if err != nil {
		return nil, err
	}

	return svc.market.BuildMarketSnapshot(
		addresses, orders, bets, feeds, matches,
		height, time.Now(), giveAsset, getAsset,
	), nil
}

func matchRows(snapshot *application.MarketSnapshot) [][]string {
	rows := make([][]string, 0, len(snapshot.PendingMatches))
	for _, match := range snapshot.PendingMatches {
		rows = append(rows, []string{
			match.MatchID, strconv.FormatInt(match.TimeLeft, 10),
		})
	}
	return rows
}
