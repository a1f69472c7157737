package provider

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/rs/zerolog/log"
)

const (
	HANDSHAKE_RETRY_INTERVAL = 2 * time.Second
)

type sendTxArgs struct {
	From common.Address `json:"from"`
	To   common.Address `json:"to"`
	Data hexutil.Bytes  `json:"data"`
}

// RemoteProvider delegates signing to a JSON-RPC wallet provider that holds
// the benefactor key.
type RemoteProvider struct {
	connector

	client        *rpc.Client
	address       common.Address
	chainID       *big.Int
	retryInterval time.Duration
}

func NewRemoteProvider(
	ctx context.Context,
	url string,
	apiToken string,
	address common.Address,
	chainID *big.Int,
) (*RemoteProvider, error) {
	opts := make([]rpc.ClientOption, 0)
	if apiToken != "" {
		opts = append(opts, rpc.WithHeader("Authorization", "Bearer "+apiToken))
	}

	client, err := rpc.DialOptions(ctx, url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial provider: %w", err)
	}

	return &RemoteProvider{
		client:        client,
		address:       address,
		chainID:       chainID,
		retryInterval: HANDSHAKE_RETRY_INTERVAL,
	}, nil
}

// Start runs the connect handshake in the background until it succeeds or ctx is done.
func (p *RemoteProvider) Start(ctx context.Context) {
	go p.handshake(ctx)
}

func (p *RemoteProvider) handshake(ctx context.Context) {
	for {
		ev, err := p.connect(ctx)
		if err == nil {
			p.emit(ev)
			return
		}

		log.Warn().Msgf("Provider handshake failed: %s", err)
		select {
		case <-ctx.Done():
			p.emit(ConnectEvent{Err: fmt.Errorf("handshake aborted: %w", ctx.Err())})
			return
		case <-time.After(p.retryInterval):
		}
	}
}

func (p *RemoteProvider) connect(ctx context.Context) (ConnectEvent, error) {
	var chainID hexutil.Big
	err := p.client.CallContext(ctx, &chainID, "eth_chainId")
	if err != nil {
		return ConnectEvent{}, err
	}
	if p.chainID != nil && p.chainID.Cmp(chainID.ToInt()) != 0 {
		// wrong chain is not retried
		return ConnectEvent{
			ChainID: chainID.ToInt(),
			Err:     fmt.Errorf("provider is on chain %s, expected %s", chainID.ToInt(), p.chainID),
		}, nil
	}

	if p.address == (common.Address{}) {
		var accounts []common.Address
		err := p.client.CallContext(ctx, &accounts, "eth_accounts")
		if err != nil {
			return ConnectEvent{}, err
		}
		if len(accounts) == 0 {
			return ConnectEvent{ChainID: chainID.ToInt(), Err: fmt.Errorf("provider exposes no accounts")}, nil
		}
		p.address = accounts[0]
	}

	return ConnectEvent{ChainID: chainID.ToInt()}, nil
}

func (p *RemoteProvider) Address() common.Address {
	return p.address
}

func (p *RemoteProvider) SignTypedData(ctx context.Context, typedData apitypes.TypedData) (string, error) {
	var sig string
	err := p.client.CallContext(ctx, &sig, "eth_signTypedData_v4", p.address, typedData)
	if err != nil {
		return "", err
	}
	return sig, nil
}

func (p *RemoteProvider) Transact(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	var hash common.Hash
	err := p.client.CallContext(ctx, &hash, "eth_sendTransaction", sendTxArgs{
		From: p.address,
		To:   to,
		Data: data,
	})
	if err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

func (p *RemoteProvider) Close() {
	p.client.Close()
}
