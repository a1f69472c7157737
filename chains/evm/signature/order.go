package signature

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
)

const (
	DOMAIN_NAME  = "EthenaMinting"
	VERSION      = "1"
	PRIMARY_TYPE = "Order"
)

type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

var OrderTypes = apitypes.Types{
	"EIP712Domain": []apitypes.Type{
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	PRIMARY_TYPE: []apitypes.Type{
		{Name: "order_id", Type: "string"},
		{Name: "order_type", Type: "uint8"},
		{Name: "expiry", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "benefactor", Type: "address"},
		{Name: "beneficiary", Type: "address"},
		{Name: "collateral_asset", Type: "address"},
		{Name: "collateral_amount", Type: "uint256"},
		{Name: "usde_amount", Type: "uint256"},
	},
}

// OrderTypedData builds the structured data that gets signed for the order.
// Integers are decimal strings so that JSON-RPC wallets receive them without
// float rounding.
func OrderTypedData(order *ethena.Order, domain Domain) apitypes.TypedData {
	o := order.SigningOrder()
	msg := apitypes.TypedDataMessage{
		"order_id":          o.OrderId,
		"order_type":        strconv.FormatUint(uint64(o.OrderType), 10),
		"expiry":            o.Expiry.String(),
		"nonce":             o.Nonce.String(),
		"benefactor":        o.Benefactor.Hex(),
		"beneficiary":       o.Beneficiary.Hex(),
		"collateral_asset":  o.CollateralAsset.Hex(),
		"collateral_amount": o.CollateralAmount.String(),
		"usde_amount":       o.UsdeAmount.String(),
	}

	chainId := math.HexOrDecimal256(*domain.ChainID)
	return apitypes.TypedData{
		Types:       OrderTypes,
		PrimaryType: PRIMARY_TYPE,
		Domain: apitypes.TypedDataDomain{
			Name:              domain.Name,
			Version:           domain.Version,
			ChainId:           &chainId,
			VerifyingContract: domain.VerifyingContract.Hex(),
		},
		Message: msg,
	}
}

// Hash calculates the EIP-712 digest of the typed data.
func Hash(typedData apitypes.TypedData) ([]byte, error) {
	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return []byte{}, err
	}

	messageHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return []byte{}, fmt.Errorf("failed to hash %s: %w", typedData.PrimaryType, err)
	}

	rawData := []byte(fmt.Sprintf("\x19\x01%s%s", string(domainSeparator), string(messageHash)))
	return crypto.Keccak256(rawData), nil
}

// OrderHash calculates the digest the minting contract verifies the order signature against.
func OrderHash(order *ethena.Order, domain Domain) ([]byte, error) {
	return Hash(OrderTypedData(order, domain))
}
