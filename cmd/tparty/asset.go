package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/tokenparty/tparty-client/internal/core/domain"
	"github.com/tokenparty/tparty-client/pkg/mathutil"
)

var asset = cli.Command{
	Name:      "asset",
	Usage:     "display the properties, holders and sends of an asset",
	ArgsUsage: "ASSET",
	Action:    assetAction,
}

func assetAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("missing asset argument")
	}
	name := ctx.Args().First()
	svc := buildServices()

	issuances, err := svc.ledger.GetIssuances(ctx.Context, name)
	if err != nil {
		return err
	}
	if len(issuances) == 0 {
		return fmt.Errorf("no valid issuances found for asset %s", name)
	}

	var supply uint64
	for _, issuance := range issuances {
		supply += issuance.Quantity
	}
	// the latest issuance carries the current owner, divisibility and
	// description
	latest := issuances[len(issuances)-1]

	printTable("Asset", []string{
		"Asset", "Owner", "Divisible", "Supply", "Description",
	}, [][]string{{
		name,
		latest.Issuer,
		strconv.FormatBool(latest.Divisible),
		formatQuantity(supply, latest.Divisible),
		latest.Description,
	}})

	holders, err := svc.ledger.GetBalancesByAsset(ctx.Context, name)
	if err != nil {
		return err
	}
	holderRows := make([][]string, 0, len(holders))
	for _, holder := range holders {
		holderRows = append(holderRows, []string{
			holder.Address,
			formatQuantity(holder.Quantity, latest.Divisible),
		})
	}
	printTable("Holders", []string{"Address", "Amount"}, holderRows)

	sends, err := svc.ledger.GetSends(ctx.Context, name)
	if err != nil {
		return err
	}
	sendRows := make([][]string, 0, len(sends))
	for _, send := range sends {
		sendRows = append(sendRows, []string{
			send.Source,
			send.Destination,
			formatQuantity(send.Quantity, latest.Divisible),
			send.TxHash,
		})
	}
	printTable("Sends", []string{
		"Source", "Destination", "Quantity", "Tx Hash",
	}, sendRows)

	return nil
}

func formatQuantity(quantity uint64, divisible bool) string {
	if divisible {
		return mathutil.Div(quantity, domain.Unit).String()
	}
	return strconv.FormatUint(quantity, 10)
}
