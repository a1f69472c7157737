package config_test

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/sprintertech/sprinter-minting/config"
	"github.com/stretchr/testify/suite"
)

type TokenStoreTestSuite struct {
	suite.Suite

	store *config.TokenStore
	usdt  config.TokenConfig
}

func TestRunTokenStoreTestSuite(t *testing.T) {
	suite.Run(t, new(TokenStoreTestSuite))
}

func (s *TokenStoreTestSuite) SetupTest() {
	s.usdt = config.TokenConfig{
		Address:        common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"),
		Decimals:       6,
		ResetAllowance: true,
	}
	s.store = config.NewTokenStore(map[string]config.TokenConfig{
		"usdt": s.usdt,
	})
}

func (s *TokenStoreTestSuite) Test_ConfigBySymbol_CaseInsensitive() {
	c, err := s.store.ConfigBySymbol("USDT")

	s.Nil(err)
	s.Equal(s.usdt, c)
}

func (s *TokenStoreTestSuite) Test_ConfigBySymbol_Missing() {
	_, err := s.store.ConfigBySymbol("DAI")

	s.NotNil(err)
}

func (s *TokenStoreTestSuite) Test_CheckDecimals_Match() {
	err := s.store.CheckDecimals(context.Background(), func(ctx context.Context, token common.Address) (uint8, error) {
		s.Equal(s.usdt.Address, token)
		return 6, nil
	})

	s.Nil(err)
}

func (s *TokenStoreTestSuite) Test_CheckDecimals_Mismatch() {
	err := s.store.CheckDecimals(context.Background(), func(ctx context.Context, token common.Address) (uint8, error) {
		return 18, nil
	})

	s.NotNil(err)
	s.Contains(err.Error(), "USDT has 18 decimals, configured 6")
}

func (s *TokenStoreTestSuite) Test_CheckDecimals_ReadFails() {
	err := s.store.CheckDecimals(context.Background(), func(ctx context.Context, token common.Address) (uint8, error) {
		return 0, fmt.Errorf("error")
	})

	s.NotNil(err)
}

func (s *TokenStoreTestSuite) Test_ToUnits_ScalesByDecimals() {
	units, err := s.usdt.ToUnits(decimal.NewFromInt(10000))

	s.Nil(err)
	s.Equal(big.NewInt(10000000000), units)
}

func (s *TokenStoreTestSuite) Test_ToUnits_Fraction() {
	units, err := s.usdt.ToUnits(decimal.RequireFromString("1.5"))

	s.Nil(err)
	s.Equal(big.NewInt(1500000), units)
}

func (s *TokenStoreTestSuite) Test_ToUnits_TooManyDecimals() {
	_, err := s.usdt.ToUnits(decimal.RequireFromString("0.0000001"))

	s.NotNil(err)
}
