package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tokenparty/tparty-client/internal/core/domain"
	"github.com/tokenparty/tparty-client/pkg/mathutil"
)

var balances = cli.Command{
	Name:      "balances",
	Usage:     "display the token balances of an address",
	ArgsUsage: "ADDRESS",
	Action:    balancesAction,
}

var walletView = cli.Command{
	Name:   "wallet",
	Usage:  "list the addresses in your backend wallet along with their coin balances",
	Action: walletAction,
}

var info = cli.Command{
	Name:   "getinfo",
	Usage:  "get the current state of the ledger server",
	Action: infoAction,
}

func balancesAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("missing address argument")
	}
	address := ctx.Args().First()
	svc := buildServices()

	tokenBalances, err := svc.ledger.GetBalances(ctx.Context, address)
	if err != nil {
		return err
	}

	rows := [][]string{}
	coinBalances, err := svc.wallet.Balances(ctx.Context)
	if err != nil {
		return err
	}
	for _, balance := range coinBalances {
		if balance.Address == address {
			rows = append(rows, []string{"BTC", balance.Amount.String()})
		}
	}
	for _, balance := range tokenBalances {
		rows = append(rows, []string{
			balance.Asset,
			mathutil.Div(balance.Quantity, domain.Unit).String(),
		})
	}

	printTable("Balances", []string{"Asset", "Amount"}, rows)
	return nil
}

func walletAction(ctx *cli.Context) error {
	svc := buildServices()

	coinBalances, err := svc.wallet.Balances(ctx.Context)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(coinBalances))
	for _, balance := range coinBalances {
		rows = append(rows, []string{balance.Address, balance.Amount.String()})
	}
	printTable("Wallet", []string{"Address", "Balance"}, rows)
	return nil
}

func infoAction(ctx *cli.Context) error {
	svc := buildServices()

	runningInfo, err := svc.ledger.GetRunningInfo(ctx.Context)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(runningInfo, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
