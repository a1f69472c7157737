// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"fmt"
)

type GeneralChainConfig struct {
	Name               string  `mapstructure:"name" default:"mainnet"`
	Id                 *uint64 `mapstructure:"id"`
	Endpoint           string  `mapstructure:"endpoint" default:"https://eth.llamarpc.com"`
	Blocktime          uint64  `mapstructure:"blocktime" default:"12"`
	BlockConfirmations uint64  `mapstructure:"blockConfirmations" default:"1"`
	// seconds
	RPCTimeout uint64 `mapstructure:"rpcTimeout" default:"30"`
}

func (c *GeneralChainConfig) Validate() error {
	// viper defaults to 0 for not specified ints
	if c.Id == nil {
		return fmt.Errorf("required field chain.Id empty")
	}
	if c.Endpoint == "" {
		return fmt.Errorf("required field chain.Endpoint empty for chain %v", *c.Id)
	}
	if c.BlockConfirmations == 0 {
		return fmt.Errorf("chain.BlockConfirmations must be at least 1 for chain %v", *c.Id)
	}
	return nil
}
