// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-minting/chains/evm/calls/consts"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
)

type OrderSignature struct {
	SignatureType  uint8  `abi:"signature_type"`
	SignatureBytes []byte `abi:"signature_bytes"`
}

type MintingContract struct {
	Contract
}

func NewMintingContract(
	caller ContractCaller,
	address common.Address,
) *MintingContract {
	return &MintingContract{
		Contract: NewContract(address, consts.MintingABI, caller, nil),
	}
}

// VerifyOrder checks on-chain that the signature is valid for the order.
// A reverted call is reported as an invalid signature.
func (c *MintingContract) VerifyOrder(ctx context.Context, order *ethena.Order, signature ethena.Signature) (bool, error) {
	sigBytes, err := hexutil.Decode(signature.Bytes)
	if err != nil {
		return false, fmt.Errorf("invalid signature encoding: %w", err)
	}

	res, err := c.CallContract(
		ctx,
		"verifyOrder",
		order.SigningOrder(),
		OrderSignature{
			SignatureType:  uint8(signature.Type),
			SignatureBytes: sigBytes,
		})
	if err != nil {
		var dataErr rpc.DataError
		if errors.As(err, &dataErr) {
			log.Warn().Str("orderID", order.OrderID).Msgf("verifyOrder reverted: %s, %v", err, dataErr.ErrorData())
			return false, nil
		}
		return false, err
	}

	return *abi.ConvertType(res[0], new(bool)).(*bool), nil
}
