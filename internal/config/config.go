package config

import (
	"fmt"
	"net/url"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// TestnetKey selects test network addresses and block numbers
	TestnetKey = "TESTNET"
	// TestcoinKey selects the alternate-asset test ledger on every network
	TestcoinKey = "TESTCOIN"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DatadirKey is the local data directory of the client
	DatadirKey = "DATADIR"

	// LedgerRPCConnectKey is the hostname or IP of the ledger JSON-RPC server
	LedgerRPCConnectKey = "LEDGER_RPC_CONNECT"
	// LedgerRPCPortKey is the ledger JSON-RPC port to connect to
	LedgerRPCPortKey = "LEDGER_RPC_PORT"
	// LedgerRPCUserKey is the username used to communicate with the ledger server
	LedgerRPCUserKey = "LEDGER_RPC_USER"
	// LedgerRPCPasswordKey is the password used to communicate with the ledger server
	LedgerRPCPasswordKey = "LEDGER_RPC_PASSWORD"
	// LedgerRPCSSLKey toggles SSL for the ledger server connection
	LedgerRPCSSLKey = "LEDGER_RPC_SSL"

	// WalletConnectKey is the hostname or IP of the wallet backend
	WalletConnectKey = "WALLET_CONNECT"
	// WalletPortKey is the wallet backend port to connect to
	WalletPortKey = "WALLET_PORT"
	// WalletUserKey is the username used to communicate with the wallet backend
	WalletUserKey = "WALLET_USER"
	// WalletPasswordKey is the password used to communicate with the wallet backend
	WalletPasswordKey = "WALLET_PASSWORD"
	// WalletSSLKey toggles SSL for the wallet backend connection
	WalletSSLKey = "WALLET_SSL"

	// SigningToolKey is the path of the external per-input signer binary
	SigningToolKey = "SIGNING_TOOL"

	defaultLedgerPort        = 4000
	defaultLedgerPortTestnet = 14000
	defaultWalletPort        = 8332
	defaultWalletPortTestnet = 18332
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("tparty-client", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("TPARTY")
	vip.AutomaticEnv()

	vip.SetDefault(TestnetKey, false)
	vip.SetDefault(TestcoinKey, false)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LedgerRPCConnectKey, "localhost")
	vip.SetDefault(LedgerRPCUserKey, "rpc")
	vip.SetDefault(LedgerRPCSSLKey, false)
	vip.SetDefault(WalletConnectKey, "localhost")
	vip.SetDefault(WalletUserKey, "walletrpc")
	vip.SetDefault(WalletSSLKey, false)
	vip.SetDefault(SigningToolKey, "txsigntool")

	if !vip.IsSet(LedgerRPCPortKey) {
		port := defaultLedgerPort
		if GetBool(TestnetKey) {
			port = defaultLedgerPortTestnet
		}
		vip.SetDefault(LedgerRPCPortKey, port)
	}
	if !vip.IsSet(WalletPortKey) {
		port := defaultWalletPort
		if GetBool(TestnetKey) {
			port = defaultWalletPortTestnet
		}
		vip.SetDefault(WalletPortKey, port)
	}

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

// LedgerRPCURL assembles the ledger server endpoint from its parts.
func LedgerRPCURL() string {
	return rpcURL(
		GetBool(LedgerRPCSSLKey),
		GetString(LedgerRPCUserKey), GetString(LedgerRPCPasswordKey),
		GetString(LedgerRPCConnectKey), GetInt(LedgerRPCPortKey),
	)
}

// WalletRPCURL assembles the wallet backend endpoint from its parts.
func WalletRPCURL() string {
	return rpcURL(
		GetBool(WalletSSLKey),
		GetString(WalletUserKey), GetString(WalletPasswordKey),
		GetString(WalletConnectKey), GetInt(WalletPortKey),
	)
}

func rpcURL(ssl bool, user, password, host string, port int) string {
	scheme := "http"
	if ssl {
		scheme = "https"
	}
	return fmt.Sprintf(
		"%s://%s:%s@%s:%d",
		scheme, url.QueryEscape(user), url.QueryEscape(password), host, port,
	)
}

func validate() error {
	if port := GetInt(LedgerRPCPortKey); port <= 1 || port >= 65535 {
		return fmt.Errorf("invalid ledger RPC port number")
	}
	if port := GetInt(WalletPortKey); port <= 1 || port >= 65535 {
		return fmt.Errorf("invalid wallet RPC port number")
	}
	if len(GetString(LedgerRPCPasswordKey)) <= 0 {
		return fmt.Errorf(
			"ledger RPC password not set (use TPARTY_%s)", LedgerRPCPasswordKey,
		)
	}
	if len(GetString(WalletPasswordKey)) <= 0 {
		return fmt.Errorf(
			"wallet RPC password not set (use TPARTY_%s)", WalletPasswordKey,
		)
	}
	if len(GetString(SigningToolKey)) <= 0 {
		return fmt.Errorf("missing signing tool path")
	}
	return nil
}
