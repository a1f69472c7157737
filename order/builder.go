package order

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
)

const (
	DEFAULT_VALIDITY = 60 * time.Second
)

type Clock func() time.Time

type Builder struct {
	now      Clock
	nonces   NonceSource
	validity time.Duration
}

func NewBuilder(nonces NonceSource, validity time.Duration, now Clock) *Builder {
	if now == nil {
		now = time.Now
	}
	if validity == 0 {
		validity = DEFAULT_VALIDITY
	}

	return &Builder{
		now:      now,
		nonces:   nonces,
		validity: validity,
	}
}

// Build converts a quote into an order that expires validity after now.
func (b *Builder) Build(
	quote *ethena.Quote,
	benefactor common.Address,
	beneficiary common.Address,
	collateralAsset common.Address,
) (*ethena.Order, error) {
	if quote == nil {
		return nil, fmt.Errorf("missing quote")
	}
	if quote.QuoteID == "" {
		return nil, fmt.Errorf("quote has no id")
	}
	if quote.CollateralAmount == nil || quote.CollateralAmount.Int == nil ||
		quote.UsdeAmount == nil || quote.UsdeAmount.Int == nil {
		return nil, fmt.Errorf("quote %s has no amounts", quote.QuoteID)
	}
	if !quote.Side.Valid() {
		return nil, fmt.Errorf("quote %s has invalid side %s", quote.QuoteID, quote.Side)
	}

	// nolint:gosec
	expiry := uint64(b.now().Add(b.validity).Unix())
	nonce, err := b.nonces.Nonce(benefactor, expiry)
	if err != nil {
		return nil, err
	}

	order := &ethena.Order{
		OrderID:          quote.QuoteID,
		OrderType:        quote.Side,
		Expiry:           expiry,
		Nonce:            nonce,
		Benefactor:       benefactor,
		Beneficiary:      beneficiary,
		CollateralAsset:  collateralAsset,
		CollateralAmount: new(big.Int).Set(quote.CollateralAmount.Int),
		UsdeAmount:       new(big.Int).Set(quote.UsdeAmount.Int),
	}

	log.Debug().Str("orderID", order.OrderID).Msgf("Built order with expiry %d and nonce %s", order.Expiry, order.Nonce)
	return order, nil
}
