// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-minting/chains/evm/calls/consts"
)

type ERC20Contract struct {
	Contract
}

func NewERC20Contract(
	caller ContractCaller,
	transactor Transactor,
	address common.Address,
) *ERC20Contract {
	return &ERC20Contract{
		Contract: NewContract(address, consts.ERC20ABI, caller, transactor),
	}
}

// Allowance returns the amount spender is allowed to transfer on behalf of owner.
func (c *ERC20Contract) Allowance(ctx context.Context, owner common.Address, spender common.Address) (*big.Int, error) {
	res, err := c.CallContract(ctx, "allowance", owner, spender)
	if err != nil {
		return nil, err
	}

	out := abi.ConvertType(res[0], new(big.Int)).(*big.Int)
	return out, nil
}

func (c *ERC20Contract) Approve(ctx context.Context, spender common.Address, amount *big.Int) (common.Hash, error) {
	log.Debug().Msgf("Approving %s to spend %s of token %s", spender.Hex(), amount, c.address.Hex())
	return c.ExecuteTransaction(ctx, "approve", spender, amount)
}

func (c *ERC20Contract) Decimals(ctx context.Context) (uint8, error) {
	res, err := c.CallContract(ctx, "decimals")
	if err != nil {
		return 0, err
	}

	return *abi.ConvertType(res[0], new(uint8)).(*uint8), nil
}
