package signature_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/sprintertech/sprinter-minting/chains/evm/signature"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
	"github.com/stretchr/testify/suite"
)

func testOrder() *ethena.Order {
	return &ethena.Order{
		OrderID:          "rfq-1",
		OrderType:        ethena.MintSide,
		Expiry:           1700000060,
		Nonce:            big.NewInt(1700000060),
		Benefactor:       common.HexToAddress("0x8BFCF9e2764BC84DE4BBd0a0f5AAF19F47027A73"),
		Beneficiary:      common.HexToAddress("0x8BFCF9e2764BC84DE4BBd0a0f5AAF19F47027A73"),
		CollateralAsset:  common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"),
		CollateralAmount: big.NewInt(10000000000),
		UsdeAmount:       big.NewInt(9998000000),
	}
}

func testDomain() signature.Domain {
	return signature.Domain{
		Name:              signature.DOMAIN_NAME,
		Version:           signature.VERSION,
		ChainID:           big.NewInt(1),
		VerifyingContract: common.HexToAddress("0xe3490297a08d6fC8Da46Edb7B6142E4F461b62D3"),
	}
}

type OrderHashTestSuite struct {
	suite.Suite
}

func TestRunOrderHashTestSuite(t *testing.T) {
	suite.Run(t, new(OrderHashTestSuite))
}

func (s *OrderHashTestSuite) Test_OrderTypedData_Deterministic() {
	first := signature.OrderTypedData(testOrder(), testDomain())
	second := signature.OrderTypedData(testOrder(), testDomain())

	s.Equal(first, second)
	s.Equal("Order", first.PrimaryType)
	s.Equal("0", first.Message["order_type"])
}

func (s *OrderHashTestSuite) Test_OrderTypedData_RedeemOrderType() {
	order := testOrder()
	order.OrderType = ethena.RedeemSide

	typedData := signature.OrderTypedData(order, testDomain())

	s.Equal("1", typedData.Message["order_type"])
}

func (s *OrderHashTestSuite) Test_OrderHash_Deterministic() {
	first, err := signature.OrderHash(testOrder(), testDomain())
	s.Nil(err)
	second, err := signature.OrderHash(testOrder(), testDomain())
	s.Nil(err)

	s.Equal(first, second)
	s.Len(first, 32)
}

func (s *OrderHashTestSuite) Test_OrderHash_MutatedOrderChangesHash() {
	original, err := signature.OrderHash(testOrder(), testDomain())
	s.Nil(err)

	order := testOrder()
	order.UsdeAmount = big.NewInt(9999000000)
	mutated, err := signature.OrderHash(order, testDomain())
	s.Nil(err)

	s.NotEqual(original, mutated)
}

func (s *OrderHashTestSuite) Test_OrderHash_DomainBindsChain() {
	original, err := signature.OrderHash(testOrder(), testDomain())
	s.Nil(err)

	domain := testDomain()
	domain.ChainID = big.NewInt(11155111)
	other, err := signature.OrderHash(testOrder(), domain)
	s.Nil(err)

	s.NotEqual(original, other)
}

func (s *OrderHashTestSuite) Test_OrderHash_SignatureRecoversSigner() {
	key, err := crypto.GenerateKey()
	s.Nil(err)

	hash, err := signature.OrderHash(testOrder(), testDomain())
	s.Nil(err)
	sig, err := crypto.Sign(hash, key)
	s.Nil(err)

	pub, err := crypto.SigToPub(hash, sig)
	s.Nil(err)
	s.Equal(crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(*pub))
}

func (s *OrderHashTestSuite) Test_OrderTypedData_LargeAmountsSurviveJSON() {
	order := testOrder()
	usdeAmount, ok := new(big.Int).SetString("9998000000123000000000", 10)
	s.True(ok)
	order.UsdeAmount = usdeAmount
	typedData := signature.OrderTypedData(order, testDomain())
	expected, err := signature.Hash(typedData)
	s.Nil(err)

	encoded, err := json.Marshal(typedData)
	s.Nil(err)
	var decoded apitypes.TypedData
	err = json.Unmarshal(encoded, &decoded)
	s.Nil(err)
	hash, err := signature.Hash(decoded)

	s.Nil(err)
	s.Equal("9998000000123000000000", decoded.Message["usde_amount"])
	s.Equal(expected, hash)
}

func (s *OrderHashTestSuite) Test_OrderTypedData_HashesLikeNumericMessage() {
	order := testOrder()
	typedData := signature.OrderTypedData(order, testDomain())
	expected, err := signature.Hash(typedData)
	s.Nil(err)

	typedData.Message = apitypes.TypedDataMessage{
		"order_id":          order.OrderID,
		"order_type":        big.NewInt(0),
		"expiry":            big.NewInt(1700000060),
		"nonce":             order.Nonce,
		"benefactor":        order.Benefactor.Hex(),
		"beneficiary":       order.Beneficiary.Hex(),
		"collateral_asset":  order.CollateralAsset.Hex(),
		"collateral_amount": order.CollateralAmount,
		"usde_amount":       order.UsdeAmount,
	}
	hash, err := signature.Hash(typedData)

	s.Nil(err)
	s.Equal(expected, hash)
}
