// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm

import (
	"fmt"
	"math/big"
	"time"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"

	"github.com/sprintertech/sprinter-minting/chains/evm/signature"
	"github.com/sprintertech/sprinter-minting/config"
	"github.com/sprintertech/sprinter-minting/config/chain"
)

const (
	MAINNET_MINTING_CONTRACT = "0xe3490297a08d6fC8Da46Edb7B6142E4F461b62D3"
)

// DefaultTokens are the mainnet collateral and synthetic tokens.
func DefaultTokens() map[string]config.TokenConfig {
	return map[string]config.TokenConfig{
		"USDC": {
			Address:  common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
			Decimals: 6,
		},
		"USDT": {
			Address:        common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"),
			Decimals:       6,
			ResetAllowance: true,
		},
		"USDe": {
			Address:  common.HexToAddress("0x4c9EDD5852cd905f086C759E8383e09bff1E68B3"),
			Decimals: 18,
		},
	}
}

type EVMConfig struct {
	GeneralChainConfig chain.GeneralChainConfig

	MintingContract common.Address
	Domain          signature.Domain
	Tokens          map[string]config.TokenConfig

	Blocktime      time.Duration
	ReceiptTimeout time.Duration
	RPCTimeout     time.Duration
}

type RawTokenConfig struct {
	Address        string `mapstructure:"address"`
	Decimals       uint8  `mapstructure:"decimals"`
	ResetAllowance bool   `mapstructure:"resetAllowance"`
}

type RawEVMConfig struct {
	chain.GeneralChainConfig `mapstructure:",squash"`
	MintingContract          string                    `mapstructure:"mintingContract" default:"0xe3490297a08d6fC8Da46Edb7B6142E4F461b62D3"`
	DomainName               string                    `mapstructure:"domainName" default:"EthenaMinting"`
	DomainVersion            string                    `mapstructure:"domainVersion" default:"1"`
	Tokens                   map[string]RawTokenConfig `mapstructure:"tokens"`

	// seconds
	ReceiptTimeout uint64 `mapstructure:"receiptTimeout" default:"180"`
}

func (c *RawEVMConfig) Validate() error {
	if err := c.GeneralChainConfig.Validate(); err != nil {
		return err
	}
	if !common.IsHexAddress(c.MintingContract) {
		return fmt.Errorf("invalid minting contract address %s", c.MintingContract)
	}
	for symbol, token := range c.Tokens {
		if !common.IsHexAddress(token.Address) {
			return fmt.Errorf("invalid address %s of token %s", token.Address, symbol)
		}
	}
	return nil
}

// NewEVMConfig decodes and validates an instance of an EVMConfig from
// raw chain config
func NewEVMConfig(chainConfig map[string]interface{}) (*EVMConfig, error) {
	var c RawEVMConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &c,
	})
	if err != nil {
		return nil, err
	}
	err = decoder.Decode(chainConfig)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&c)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	tokens := DefaultTokens()
	if len(c.Tokens) > 0 {
		tokens = make(map[string]config.TokenConfig)
		for s, t := range c.Tokens {
			tokens[s] = config.TokenConfig{
				Address:        common.HexToAddress(t.Address),
				Decimals:       t.Decimals,
				ResetAllowance: t.ResetAllowance,
			}
		}
	}

	mintingContract := common.HexToAddress(c.MintingContract)
	config := &EVMConfig{
		GeneralChainConfig: c.GeneralChainConfig,
		MintingContract:    mintingContract,
		Domain: signature.Domain{
			Name:              c.DomainName,
			Version:           c.DomainVersion,
			ChainID:           new(big.Int).SetUint64(*c.Id),
			VerifyingContract: mintingContract,
		},
		Tokens: tokens,

		// nolint:gosec
		Blocktime: time.Duration(c.Blocktime) * time.Second,
		// nolint:gosec
		ReceiptTimeout: time.Duration(c.ReceiptTimeout) * time.Second,
		// nolint:gosec
		RPCTimeout: time.Duration(c.RPCTimeout) * time.Second,
	}

	return config, nil
}
