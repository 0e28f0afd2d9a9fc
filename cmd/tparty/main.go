package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/tokenparty/tparty-client/internal/config"
	"github.com/tokenparty/tparty-client/internal/core/application"
	"github.com/tokenparty/tparty-client/internal/core/domain"
	"github.com/tokenparty/tparty-client/internal/core/ports"
	ledgerrpc "github.com/tokenparty/tparty-client/internal/infrastructure/ledger-rpc"
	signingtool "github.com/tokenparty/tparty-client/internal/infrastructure/signing-tool"
	"github.com/tokenparty/tparty-client/internal/infrastructure/terminal"
	walletrpc "github.com/tokenparty/tparty-client/internal/infrastructure/wallet-rpc"
)

var version = "0.1.0"

func main() {
	app := cli.NewApp()

	app.Version = version
	app.Name = "tparty"
	app.Usage = "command line client for the tokenparty ledger"
	app.Before = func(_ *cli.Context) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
		return nil
	}
	app.Commands = append(
		app.Commands,
		&market,
		&pending,
		&balances,
		&asset,
		&walletView,
		&info,
		&send,
		&order,
		&btcpay,
		&issuance,
		&broadcast,
		&bet,
		&dividend,
		&burn,
		&cancel,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

type services struct {
	net         domain.NetworkParams
	ledger      ports.LedgerQuery
	wallet      ports.WalletCapability
	broadcaster ports.NetworkSubmission
	signer      application.SignerService
	market      application.MarketService
}

// buildServices resolves the network parameter bundle exactly once per
// process and wires every collaborator with it.
func buildServices() *services {
	net := domain.ResolveNetworkParams(
		config.GetBool(config.TestnetKey), config.GetBool(config.TestcoinKey),
	)
	ledger := ledgerrpc.NewService(config.LedgerRPCURL())
	wallet, broadcaster := walletrpc.NewService(config.WalletRPCURL())
	tool := signingtool.NewService(config.GetString(config.SigningToolKey))

	return &services{
		net:         net,
		ledger:      ledger,
		wallet:      wallet,
		broadcaster: broadcaster,
		signer: application.NewSignerService(
			wallet, broadcaster, tool, terminal.NewPrompter(),
		),
		market: application.NewMarketService(net),
	}
}

func (s *services) myAddresses(ctx *cli.Context) ([]string, error) {
	coinBalances, err := s.wallet.Balances(ctx.Context)
	if err != nil {
		return nil, err
	}

	addresses := make([]string, 0, len(coinBalances))
	for _, balance := range coinBalances {
		addresses = append(addresses, balance.Address)
	}
	return addresses, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[tparty] %v\n", err)
	os.Exit(1)
}
