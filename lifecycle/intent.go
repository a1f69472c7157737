package lifecycle

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
)

const (
	USDC = "USDC"
	USDT = "USDT"
)

// MintIntent is the operation the user asked for. Beneficiary defaults to
// the benefactor and benefactor defaults to the signing provider account.
type MintIntent struct {
	ID                    string          `json:"id"`
	Amount                decimal.Decimal `json:"amount"`
	CollateralAsset       string          `json:"collateralAsset"`
	Side                  ethena.Side     `json:"side"`
	Benefactor            common.Address  `json:"benefactor"`
	Beneficiary           common.Address  `json:"beneficiary"`
	AllowInfiniteApproval bool            `json:"allowInfiniteApproval"`
}

func (i MintIntent) Validate() error {
	if !i.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", i.Amount)
	}

	switch strings.ToUpper(i.CollateralAsset) {
	case USDC, USDT:
	default:
		return fmt.Errorf("unsupported collateral asset %s", i.CollateralAsset)
	}

	if !i.Side.Valid() {
		return fmt.Errorf("unsupported side %s", i.Side)
	}

	return nil
}
