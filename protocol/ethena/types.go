package ethena

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type Side string

const (
	MintSide   Side = "MINT"
	RedeemSide Side = "REDEEM"
)

func (s Side) Valid() bool {
	return s == MintSide || s == RedeemSide
}

// OrderType returns the numeric code the minting contract expects for the side.
func (s Side) OrderType() uint8 {
	if s == RedeemSide {
		return 1
	}
	return 0
}

type SignatureType uint8

const (
	EIP712 SignatureType = 0
)

// BigInt decodes integers sent either as JSON numbers or as quoted strings.
type BigInt struct {
	*big.Int
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	if b.Int == nil {
		b.Int = new(big.Int)
	}

	s := strings.Trim(string(data), "\"")
	_, ok := b.SetString(s, 10)
	if !ok {
		return fmt.Errorf("failed to parse big.Int from %s", s)
	}

	return nil
}

func (b BigInt) MarshalJSON() ([]byte, error) {
	if b.Int == nil {
		return []byte("null"), nil
	}
	return []byte(b.String()), nil
}

// Quote is the RFQ response of the venue.
type Quote struct {
	QuoteID          string  `json:"rfq_id"`
	Side             Side    `json:"side"`
	CollateralAmount *BigInt `json:"collateral_amount"`
	UsdeAmount       *BigInt `json:"usde_amount"`
}

func (q *Quote) validate() error {
	if q.QuoteID == "" {
		return fmt.Errorf("missing rfq_id")
	}
	if q.CollateralAmount == nil || q.CollateralAmount.Int == nil {
		return fmt.Errorf("missing collateral_amount")
	}
	if q.UsdeAmount == nil || q.UsdeAmount.Int == nil {
		return fmt.Errorf("missing usde_amount")
	}
	return nil
}

type QuoteRequest struct {
	Pair       string
	Type       string
	Side       Side
	Size       string
	Benefactor common.Address
}

// Order is the canonical order record submitted to the venue.
type Order struct {
	OrderID          string
	OrderType        Side
	Expiry           uint64
	Nonce            *big.Int
	Benefactor       common.Address
	Beneficiary      common.Address
	CollateralAsset  common.Address
	CollateralAmount *big.Int
	UsdeAmount       *big.Int
}

type orderJSON struct {
	OrderID          string         `json:"order_id"`
	OrderType        Side           `json:"order_type"`
	Expiry           uint64         `json:"expiry"`
	Nonce            BigInt         `json:"nonce"`
	Benefactor       common.Address `json:"benefactor"`
	Beneficiary      common.Address `json:"beneficiary"`
	CollateralAsset  common.Address `json:"collateral_asset"`
	CollateralAmount BigInt         `json:"collateral_amount"`
	UsdeAmount       BigInt         `json:"usde_amount"`
}

func (o *Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(orderJSON{
		OrderID:          o.OrderID,
		OrderType:        o.OrderType,
		Expiry:           o.Expiry,
		Nonce:            BigInt{o.Nonce},
		Benefactor:       o.Benefactor,
		Beneficiary:      o.Beneficiary,
		CollateralAsset:  o.CollateralAsset,
		CollateralAmount: BigInt{o.CollateralAmount},
		UsdeAmount:       BigInt{o.UsdeAmount},
	})
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var raw orderJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*o = Order{
		OrderID:          raw.OrderID,
		OrderType:        raw.OrderType,
		Expiry:           raw.Expiry,
		Nonce:            raw.Nonce.Int,
		Benefactor:       raw.Benefactor,
		Beneficiary:      raw.Beneficiary,
		CollateralAsset:  raw.CollateralAsset,
		CollateralAmount: raw.CollateralAmount.Int,
		UsdeAmount:       raw.UsdeAmount.Int,
	}
	return nil
}

type Signature struct {
	Type  SignatureType `json:"signature_type"`
	Bytes string        `json:"signature_bytes"`
}

// SubmissionError is returned when the venue refuses a signed order.
type SubmissionError struct {
	Reason string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order rejected: %s", e.Reason)
}

// QuoteError is returned when no usable quote could be obtained.
type QuoteError struct {
	Err error
}

func (e *QuoteError) Error() string {
	return fmt.Sprintf("quote unavailable: %s", e.Err)
}

func (e *QuoteError) Unwrap() error {
	return e.Err
}

// SigningOrder is the representation of an order that gets signed and
// verified on-chain: the side becomes its numeric code and every integer is
// arbitrary precision.
type SigningOrder struct {
	OrderId          string         `abi:"order_id"`
	OrderType        uint8          `abi:"order_type"`
	Expiry           *big.Int       `abi:"expiry"`
	Nonce            *big.Int       `abi:"nonce"`
	Benefactor       common.Address `abi:"benefactor"`
	Beneficiary      common.Address `abi:"beneficiary"`
	CollateralAsset  common.Address `abi:"collateral_asset"`
	CollateralAmount *big.Int       `abi:"collateral_amount"`
	UsdeAmount       *big.Int       `abi:"usde_amount"`
}

func (o *Order) SigningOrder() SigningOrder {
	return SigningOrder{
		OrderId:          o.OrderID,
		OrderType:        o.OrderType.OrderType(),
		Expiry:           new(big.Int).SetUint64(o.Expiry),
		Nonce:            new(big.Int).Set(o.Nonce),
		Benefactor:       o.Benefactor,
		Beneficiary:      o.Beneficiary,
		CollateralAsset:  o.CollateralAsset,
		CollateralAmount: new(big.Int).Set(o.CollateralAmount),
		UsdeAmount:       new(big.Int).Set(o.UsdeAmount),
	}
}
