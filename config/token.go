package config

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

type TokenConfig struct {
	Address  common.Address
	Decimals uint8
	// ResetAllowance marks tokens that reject changing a non-zero allowance
	// to another non-zero value.
	ResetAllowance bool
}

// ToUnits scales a human denominated amount into the token smallest unit.
func (c TokenConfig) ToUnits(amount decimal.Decimal) (*big.Int, error) {
	scaled := amount.Shift(int32(c.Decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("amount %s has more than %d decimals", amount, c.Decimals)
	}
	return scaled.BigInt(), nil
}

type TokenStore struct {
	Tokens map[string]TokenConfig
}

func NewTokenStore(tokens map[string]TokenConfig) *TokenStore {
	normalized := make(map[string]TokenConfig)
	for symbol, c := range tokens {
		normalized[strings.ToUpper(symbol)] = c
	}

	return &TokenStore{
		Tokens: normalized,
	}
}

func (s *TokenStore) ConfigBySymbol(symbol string) (TokenConfig, error) {
	c, ok := s.Tokens[strings.ToUpper(symbol)]
	if !ok {
		return TokenConfig{}, fmt.Errorf("no config for token %s", symbol)
	}

	return c, nil
}

// DecimalsReader returns the decimals the token contract reports.
type DecimalsReader func(ctx context.Context, token common.Address) (uint8, error)

// CheckDecimals makes sure every configured token matches the decimals of its
// contract, since ToUnits scales amounts by the configured value.
func (s *TokenStore) CheckDecimals(ctx context.Context, read DecimalsReader) error {
	var errs error
	for symbol, c := range s.Tokens {
		decimals, err := read(ctx, c.Address)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to read decimals of %s: %w", symbol, err))
			continue
		}
		if decimals != c.Decimals {
			errs = multierr.Append(errs, fmt.Errorf("token %s has %d decimals, configured %d", symbol, decimals, c.Decimals))
		}
	}
	return errs
}
