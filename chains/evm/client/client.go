// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	DEFAULT_RPC_TIMEOUT = 30 * time.Second
)

// EVMClient wraps the go-ethereum client and bounds every call with the RPC timeout.
type EVMClient struct {
	*ethclient.Client
	rpc     *rpc.Client
	timeout time.Duration
}

// NewEVMClient dials the RPC endpoint
func NewEVMClient(ctx context.Context, endpoint string, timeout time.Duration) (*EVMClient, error) {
	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if timeout == 0 {
		timeout = DEFAULT_RPC_TIMEOUT
	}

	return &EVMClient{
		Client:  ethclient.NewClient(rpcClient),
		rpc:     rpcClient,
		timeout: timeout,
	}, nil
}

func (c *EVMClient) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.Client.CallContract(ctx, msg, blockNumber)
}

func (c *EVMClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.Client.TransactionReceipt(ctx, txHash)
}

// LatestBlock returns the latest block number
func (c *EVMClient) LatestBlock(ctx context.Context) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	number, err := c.Client.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(number), nil
}

func (c *EVMClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.Client.PendingNonceAt(ctx, account)
}

func (c *EVMClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.Client.SuggestGasPrice(ctx)
}

func (c *EVMClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.Client.EstimateGas(ctx, msg)
}

func (c *EVMClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.Client.SendTransaction(ctx, tx)
}

func (c *EVMClient) Close() {
	c.rpc.Close()
}
