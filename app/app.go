// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
	"github.com/spf13/viper"
	"github.com/sprintertech/sprinter-minting/api"
	"github.com/sprintertech/sprinter-minting/api/handlers"
	"github.com/sprintertech/sprinter-minting/cache"
	"github.com/sprintertech/sprinter-minting/chains/evm"
	"github.com/sprintertech/sprinter-minting/chains/evm/allowance"
	"github.com/sprintertech/sprinter-minting/chains/evm/calls/contracts"
	"github.com/sprintertech/sprinter-minting/chains/evm/client"
	"github.com/sprintertech/sprinter-minting/chains/evm/confirmations"
	"github.com/sprintertech/sprinter-minting/chains/evm/provider"
	"github.com/sprintertech/sprinter-minting/chains/evm/signature"
	"github.com/sprintertech/sprinter-minting/config"
	"github.com/sprintertech/sprinter-minting/health"
	"github.com/sprintertech/sprinter-minting/lifecycle"
	"github.com/sprintertech/sprinter-minting/metrics"
	"github.com/sprintertech/sprinter-minting/observability"
	"github.com/sprintertech/sprinter-minting/order"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

var Version string

const (
	DRAIN_TIMEOUT = 5 * time.Minute
)

// minter holds the components shared by every command.
type minter struct {
	config    *config.Config
	evmConfig *evm.EVMConfig
	client    *client.EVMClient
	provider  provider.Provider
	tokens    *config.TokenStore
	allowance *allowance.Manager

	meterProvider *sdkmetric.MeterProvider
	metrics       *metrics.MintingMetrics
}

// Run executes the configured intent once.
func Run() error {
	configuration := loadConfig(&config.Config{Intent: config.IntentFromFlags()})
	observability.ConfigureLogger(configuration.LogLevel, os.Stdout)
	log.Info().Msg("Successfully loaded configuration")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cancelOnSignal(cancel)

	m, err := newMinter(ctx, configuration)
	panicOnError(err)
	defer m.close()

	intent, err := intentFromConfig(configuration.Intent)
	if err != nil {
		return err
	}

	result, err := m.orchestrator().Execute(ctx, intent)
	if err != nil {
		return err
	}

	log.Info().Str("intentID", result.IntentID).Msgf("Order %s submitted: %s", result.Order.OrderID, result.TxReference)
	return nil
}

// Serve runs the order API until the process is terminated.
func Serve() error {
	configuration := loadConfig(nil)
	observability.ConfigureLogger(configuration.LogLevel, os.Stdout)
	log.Info().Msg("Successfully loaded configuration")

	lifecycleCtx, cancelLifecycles := context.WithCancel(context.Background())
	defer cancelLifecycles()
	serverCtx, stopServer := context.WithCancel(context.Background())
	defer stopServer()

	m, err := newMinter(lifecycleCtx, configuration)
	panicOnError(err)
	defer m.close()

	go health.StartHealthEndpoint(configuration.HealthPort, func() error {
		ev, connected := m.provider.ConnectState()
		if !connected {
			return fmt.Errorf("provider not connected")
		}
		return ev.Err
	})

	statusCache := cache.NewStatusCache(configuration.StatusTTL)
	go statusCache.Watch(lifecycleCtx)

	wg := &conc.WaitGroup{}
	orchestrator := m.orchestrator(lifecycle.WithStatusReporter(statusCache))
	ordersHandler := handlers.NewOrdersHandler(lifecycleCtx, orchestrator, wg)
	statusHandler := handlers.NewStatusHandler(statusCache)
	go api.Serve(serverCtx, configuration.ApiAddr, ordersHandler, statusHandler)

	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	log.Info().Msgf("Started minting service for benefactor %s. Version: v%s", m.provider.Address().Hex(), Version)

	sig := <-sysErr
	log.Info().Msgf("terminating got ` [%v] signal", sig)
	stopServer()

	drained := make(chan struct{})
	go func() {
		wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(DRAIN_TIMEOUT):
		log.Warn().Msg("Cancelling lifecycles still in flight")
		cancelLifecycles()
		<-drained
	}
	return nil
}

// SetAllowance approves the maximum allowance of the collateral asset for the minting contract.
func SetAllowance(asset string) error {
	configuration := loadConfig(nil)
	observability.ConfigureLogger(configuration.LogLevel, os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cancelOnSignal(cancel)

	m, err := newMinter(ctx, configuration)
	panicOnError(err)
	defer m.close()

	token, err := m.tokens.ConfigBySymbol(asset)
	if err != nil {
		return err
	}

	txs, err := m.allowance.EnsureAllowance(
		ctx,
		token,
		m.evmConfig.MintingContract,
		m.provider.Address(),
		math.MaxBig256,
		true)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		log.Info().Msgf("Allowance of %s is already set to the maximum", asset)
	}
	return nil
}

func loadConfig(overrides *config.Config) *config.Config {
	var configuration *config.Config
	var err error

	configFlag := viper.GetString(config.ConfigFlagName)
	if strings.ToLower(configFlag) == "env" {
		configuration, err = config.GetConfigFromENV(viper.GetString(config.EnvFileFlagName), overrides)
		panicOnError(err)
	} else {
		configuration, err = config.GetConfigFromFile(configFlag, overrides)
		panicOnError(err)
	}
	return configuration
}

func newMinter(ctx context.Context, configuration *config.Config) (*minter, error) {
	evmConfig, err := evm.NewEVMConfig(configuration.ChainConfig)
	if err != nil {
		return nil, err
	}

	c, err := client.NewEVMClient(ctx, evmConfig.GeneralChainConfig.Endpoint, evmConfig.RPCTimeout)
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("chain", *evmConfig.GeneralChainConfig.Id).Msgf("Connected to %s", evmConfig.GeneralChainConfig.Name)

	p, err := newProvider(ctx, configuration.Signer, c, evmConfig.Domain.ChainID)
	if err != nil {
		return nil, err
	}
	acquireCtx, cancel := context.WithTimeout(ctx, configuration.Signer.Timeout)
	defer cancel()
	err = provider.Acquire(acquireCtx, p)
	if err != nil {
		p.Close()
		return nil, err
	}

	mp, err := observability.InitMetricProvider(ctx, configuration.OpenTelemetryCollectorURL)
	if err != nil {
		return nil, err
	}
	mintingMetrics, err := metrics.NewMintingMetrics(
		ctx,
		mp.Meter("minter-metric-provider"),
		configuration.Env,
		p.Address().Hex(),
		Version)
	if err != nil {
		return nil, err
	}

	tokens := config.NewTokenStore(evmConfig.Tokens)
	err = tokens.CheckDecimals(ctx, func(ctx context.Context, token common.Address) (uint8, error) {
		return contracts.NewERC20Contract(c, nil, token).Decimals(ctx)
	})
	if err != nil {
		return nil, err
	}

	watcher := confirmations.NewWatcher(
		c,
		evmConfig.GeneralChainConfig.BlockConfirmations,
		evmConfig.Blocktime,
		evmConfig.ReceiptTimeout)
	manager := allowance.NewManager(func(token common.Address) allowance.ERC20 {
		return contracts.NewERC20Contract(c, p, token)
	}, watcher, configuration.ExplorerURL)

	return &minter{
		config:        configuration,
		evmConfig:     evmConfig,
		client:        c,
		provider:      p,
		tokens:        tokens,
		allowance:     manager,
		meterProvider: mp,
		metrics:       mintingMetrics,
	}, nil
}

func (m *minter) orchestrator(opts ...lifecycle.Option) *lifecycle.Orchestrator {
	nonces, err := order.NewNonceSource(m.config.Order.NonceStrategy)
	panicOnError(err)

	venue := ethena.NewEthenaAPI(m.config.Venue.URL, m.config.Venue.QuoteRetries, m.config.Venue.Timeout)
	opts = append([]lifecycle.Option{
		lifecycle.WithQuoteType(m.config.Venue.QuoteType),
		lifecycle.WithMetrics(m.metrics),
		lifecycle.WithReadiness(func(ctx context.Context) error {
			return provider.Acquire(ctx, m.provider)
		}),
	}, opts...)

	return lifecycle.NewOrchestrator(
		venue,
		order.NewBuilder(nonces, m.config.Order.Validity, time.Now),
		m.allowance,
		signature.NewOrderSigner(m.provider, m.evmConfig.Domain, m.config.Signer.Timeout),
		contracts.NewMintingContract(m.client, m.evmConfig.MintingContract),
		venue,
		m.tokens,
		m.evmConfig.MintingContract,
		m.provider.Address(),
		opts...)
}

func (m *minter) close() {
	if err := m.meterProvider.Shutdown(context.Background()); err != nil {
		log.Error().Msgf("Error shutting down meter provider: %v", err)
	}
	m.provider.Close()
	m.client.Close()
}

func newProvider(
	ctx context.Context,
	signerConfig config.SignerConfig,
	c *client.EVMClient,
	chainID *big.Int,
) (provider.Provider, error) {
	switch signerConfig.Type {
	case config.LocalSigner:
		var key *ecdsa.PrivateKey
		var err error
		if signerConfig.Keystore != "" {
			key, err = provider.KeyFromKeystore(signerConfig.Keystore, signerConfig.Password)
		} else {
			key, err = provider.KeyFromHex(signerConfig.Key)
		}
		if err != nil {
			return nil, err
		}

		p := provider.NewLocalProvider(key, chainID, c)
		p.Start(ctx)
		return p, nil
	case config.RemoteSigner:
		var address common.Address
		if signerConfig.Address != "" {
			address = common.HexToAddress(signerConfig.Address)
		}

		p, err := provider.NewRemoteProvider(ctx, signerConfig.URL, signerConfig.ApiToken, address, chainID)
		if err != nil {
			return nil, err
		}
		p.Start(ctx)
		return p, nil
	default:
		return nil, fmt.Errorf("signer type '%s' not recognized", signerConfig.Type)
	}
}

func intentFromConfig(c config.IntentConfig) (lifecycle.MintIntent, error) {
	amount, err := decimal.NewFromString(c.Amount)
	if err != nil {
		return lifecycle.MintIntent{}, fmt.Errorf("invalid intent amount '%s': %w", c.Amount, err)
	}

	var beneficiary common.Address
	if c.Beneficiary != "" {
		if !common.IsHexAddress(c.Beneficiary) {
			return lifecycle.MintIntent{}, fmt.Errorf("invalid beneficiary %s", c.Beneficiary)
		}
		beneficiary = common.HexToAddress(c.Beneficiary)
	}

	return lifecycle.MintIntent{
		Amount:                amount,
		CollateralAsset:       strings.ToUpper(c.Asset),
		Side:                  ethena.Side(strings.ToUpper(c.Side)),
		Beneficiary:           beneficiary,
		AllowInfiniteApproval: c.InfiniteApproval,
	}, nil
}

func cancelOnSignal(cancel context.CancelFunc) {
	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	sig := <-sysErr
	log.Info().Msgf("terminating got ` [%v] signal", sig)
	cancel()
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
