package contracts_test

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-minting/chains/evm/calls/consts"
	"github.com/sprintertech/sprinter-minting/chains/evm/calls/contracts"
	mock_contracts "github.com/sprintertech/sprinter-minting/chains/evm/calls/contracts/mock"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type revertError struct{}

func (revertError) Error() string          { return "execution reverted" }
func (revertError) ErrorData() interface{} { return "0x8baa579f" }

type ERC20ContractTestSuite struct {
	suite.Suite

	contract       *contracts.ERC20Contract
	mockCaller     *mock_contracts.MockContractCaller
	mockTransactor *mock_contracts.MockTransactor
	token          common.Address
}

func TestRunERC20ContractTestSuite(t *testing.T) {
	suite.Run(t, new(ERC20ContractTestSuite))
}

func (s *ERC20ContractTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockCaller = mock_contracts.NewMockContractCaller(ctrl)
	s.mockTransactor = mock_contracts.NewMockTransactor(ctrl)
	s.token = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	s.contract = contracts.NewERC20Contract(s.mockCaller, s.mockTransactor, s.token)
}

func (s *ERC20ContractTestSuite) Test_Allowance_CallFails() {
	s.mockCaller.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("error"))

	_, err := s.contract.Allowance(context.Background(), common.Address{1}, common.Address{2})

	s.NotNil(err)
}

func (s *ERC20ContractTestSuite) Test_Allowance_ValidAllowance() {
	owner := common.HexToAddress("0x0000000000000000000000000000000000000001")
	spender := common.HexToAddress("0x0000000000000000000000000000000000000002")
	s.mockCaller.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).DoAndReturn(
		func(ctx context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
			s.Equal(s.token, *msg.To)

			args, err := consts.ERC20ABI.Methods["allowance"].Inputs.Unpack(msg.Data[4:])
			s.Nil(err)
			s.Equal(owner, args[0])
			s.Equal(spender, args[1])

			return consts.ERC20ABI.Methods["allowance"].Outputs.Pack(big.NewInt(5000))
		})

	allowance, err := s.contract.Allowance(context.Background(), owner, spender)

	s.Nil(err)
	s.Equal(big.NewInt(5000), allowance)
}

func (s *ERC20ContractTestSuite) Test_Decimals() {
	s.mockCaller.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).DoAndReturn(
		func(ctx context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
			s.Equal(s.token, *msg.To)
			s.Equal(consts.ERC20ABI.Methods["decimals"].ID, msg.Data[:4])

			return consts.ERC20ABI.Methods["decimals"].Outputs.Pack(uint8(6))
		})

	decimals, err := s.contract.Decimals(context.Background())

	s.Nil(err)
	s.Equal(uint8(6), decimals)
}

func (s *ERC20ContractTestSuite) Test_Approve_SendsApproveCalldata() {
	spender := common.HexToAddress("0x0000000000000000000000000000000000000002")
	expectedHash := common.HexToHash("0x01")
	s.mockTransactor.EXPECT().Transact(gomock.Any(), s.token, gomock.Any()).DoAndReturn(
		func(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
			s.Equal(consts.ERC20ABI.Methods["approve"].ID, data[:4])

			args, err := consts.ERC20ABI.Methods["approve"].Inputs.Unpack(data[4:])
			s.Nil(err)
			s.Equal(spender, args[0])
			s.Equal(big.NewInt(0), args[1])
			return expectedHash, nil
		})

	hash, err := s.contract.Approve(context.Background(), spender, big.NewInt(0))

	s.Nil(err)
	s.Equal(expectedHash, hash)
}

func (s *ERC20ContractTestSuite) Test_Approve_MissingTransactor() {
	contract := contracts.NewERC20Contract(s.mockCaller, nil, s.token)

	_, err := contract.Approve(context.Background(), common.Address{}, big.NewInt(1))

	s.NotNil(err)
}

type MintingContractTestSuite struct {
	suite.Suite

	contract   *contracts.MintingContract
	mockCaller *mock_contracts.MockContractCaller
	order      *ethena.Order
	signature  ethena.Signature
}

func TestRunMintingContractTestSuite(t *testing.T) {
	suite.Run(t, new(MintingContractTestSuite))
}

func (s *MintingContractTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockCaller = mock_contracts.NewMockContractCaller(ctrl)
	s.contract = contracts.NewMintingContract(
		s.mockCaller,
		common.HexToAddress("0xe3490297a08d6fC8Da46Edb7B6142E4F461b62D3"))
	s.order = &ethena.Order{
		OrderID:          "rfq-1",
		OrderType:        ethena.RedeemSide,
		Expiry:           1700000060,
		Nonce:            big.NewInt(1700000060),
		Benefactor:       common.HexToAddress("0x8BFCF9e2764BC84DE4BBd0a0f5AAF19F47027A73"),
		Beneficiary:      common.HexToAddress("0x8BFCF9e2764BC84DE4BBd0a0f5AAF19F47027A73"),
		CollateralAsset:  common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
		CollateralAmount: big.NewInt(10000000000),
		UsdeAmount:       big.NewInt(9998000000),
	}
	s.signature = ethena.Signature{
		Type:  ethena.EIP712,
		Bytes: "0x0102",
	}
}

func (s *MintingContractTestSuite) Test_VerifyOrder_InvalidSignatureEncoding() {
	_, err := s.contract.VerifyOrder(context.Background(), s.order, ethena.Signature{Bytes: "0102"})

	s.NotNil(err)
}

func (s *MintingContractTestSuite) Test_VerifyOrder_CallFails() {
	s.mockCaller.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("error"))

	_, err := s.contract.VerifyOrder(context.Background(), s.order, s.signature)

	s.NotNil(err)
}

func (s *MintingContractTestSuite) Test_VerifyOrder_RevertIsInvalid() {
	s.mockCaller.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, revertError{})

	valid, err := s.contract.VerifyOrder(context.Background(), s.order, s.signature)

	s.Nil(err)
	s.False(valid)
}

func (s *MintingContractTestSuite) Test_VerifyOrder_PacksSigningRepresentation() {
	s.mockCaller.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
			method := consts.MintingABI.Methods["verifyOrder"]
			expected, err := consts.MintingABI.Pack(
				"verifyOrder",
				ethena.SigningOrder{
					OrderId:          "rfq-1",
					OrderType:        1,
					Expiry:           big.NewInt(1700000060),
					Nonce:            big.NewInt(1700000060),
					Benefactor:       s.order.Benefactor,
					Beneficiary:      s.order.Beneficiary,
					CollateralAsset:  s.order.CollateralAsset,
					CollateralAmount: big.NewInt(10000000000),
					UsdeAmount:       big.NewInt(9998000000),
				},
				contracts.OrderSignature{
					SignatureType:  0,
					SignatureBytes: []byte{1, 2},
				})
			s.Nil(err)
			s.Equal(expected, msg.Data)

			return method.Outputs.Pack(true)
		})

	valid, err := s.contract.VerifyOrder(context.Background(), s.order, s.signature)

	s.Nil(err)
	s.True(valid)
}
