// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type Transactor interface {
	Transact(ctx context.Context, to common.Address, data []byte) (common.Hash, error)
}

// Contract packs and unpacks calls of a single deployed contract.
type Contract struct {
	ABI        abi.ABI
	address    common.Address
	caller     ContractCaller
	transactor Transactor
}

func NewContract(
	address common.Address,
	contractABI abi.ABI,
	caller ContractCaller,
	transactor Transactor,
) Contract {
	return Contract{
		ABI:        contractABI,
		address:    address,
		caller:     caller,
		transactor: transactor,
	}
}

func (c *Contract) Address() common.Address {
	return c.address
}

// CallContract executes a read-only call against the latest block and unpacks its outputs.
func (c *Contract) CallContract(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	input, err := c.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	out, err := c.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &c.address,
		Data: input,
	}, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.ABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return res, nil
}

// ExecuteTransaction packs the method call and sends it through the transactor.
func (c *Contract) ExecuteTransaction(ctx context.Context, method string, args ...interface{}) (common.Hash, error) {
	if c.transactor == nil {
		return common.Hash{}, fmt.Errorf("contract %s has no transactor", c.address.Hex())
	}

	input, err := c.ABI.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	return c.transactor.Transact(ctx, c.address, input)
}
