package allowance_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sprintertech/sprinter-minting/chains/evm/allowance"
	mock_allowance "github.com/sprintertech/sprinter-minting/chains/evm/allowance/mock"
	"github.com/sprintertech/sprinter-minting/config"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ManagerTestSuite struct {
	suite.Suite

	manager     *allowance.Manager
	mockERC20   *mock_allowance.MockERC20
	mockWatcher *mock_allowance.MockConfirmationWatcher

	usdt     config.TokenConfig
	usdc     config.TokenConfig
	owner    common.Address
	spender  common.Address
	required *big.Int
	receipt  *types.Receipt
}

func TestRunManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockERC20 = mock_allowance.NewMockERC20(ctrl)
	s.mockWatcher = mock_allowance.NewMockConfirmationWatcher(ctrl)
	s.manager = allowance.NewManager(func(token common.Address) allowance.ERC20 {
		return s.mockERC20
	}, s.mockWatcher, "https://etherscan.io")

	s.usdt = config.TokenConfig{
		Address:        common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"),
		Decimals:       6,
		ResetAllowance: true,
	}
	s.usdc = config.TokenConfig{
		Address:  common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
		Decimals: 6,
	}
	s.owner = common.HexToAddress("0x8BFCF9e2764BC84DE4BBd0a0f5AAF19F47027A73")
	s.spender = common.HexToAddress("0xe3490297a08d6fC8Da46Edb7B6142E4F461b62D3")
	s.required = big.NewInt(10000000000)
	s.receipt = &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(100),
	}
}

func (s *ManagerTestSuite) Test_EnsureAllowance_AllowanceReadFails() {
	s.mockERC20.EXPECT().Allowance(gomock.Any(), s.owner, s.spender).Return(nil, fmt.Errorf("error"))

	_, err := s.manager.EnsureAllowance(context.Background(), s.usdt, s.spender, s.owner, s.required, false)

	s.NotNil(err)
}

func (s *ManagerTestSuite) Test_EnsureAllowance_SufficientAllowance() {
	s.mockERC20.EXPECT().Allowance(gomock.Any(), s.owner, s.spender).Return(big.NewInt(10000000000), nil)

	txs, err := s.manager.EnsureAllowance(context.Background(), s.usdt, s.spender, s.owner, s.required, false)

	s.Nil(err)
	s.Empty(txs)
}

func (s *ManagerTestSuite) Test_EnsureAllowance_SecondInvocationIsNoop() {
	s.mockERC20.EXPECT().Allowance(gomock.Any(), s.owner, s.spender).Return(big.NewInt(20000000000), nil).Times(2)

	first, err := s.manager.EnsureAllowance(context.Background(), s.usdt, s.spender, s.owner, s.required, false)
	s.Nil(err)
	second, err := s.manager.EnsureAllowance(context.Background(), s.usdt, s.spender, s.owner, s.required, false)
	s.Nil(err)

	s.Empty(first)
	s.Empty(second)
}

func (s *ManagerTestSuite) Test_EnsureAllowance_ZeroAllowanceSkipsRevoke() {
	approveHash := common.HexToHash("0x02")
	s.mockERC20.EXPECT().Allowance(gomock.Any(), s.owner, s.spender).Return(big.NewInt(0), nil)
	s.mockERC20.EXPECT().Approve(gomock.Any(), s.spender, big.NewInt(10000000000)).Return(approveHash, nil)
	s.mockWatcher.EXPECT().WaitForConfirmations(gomock.Any(), approveHash).Return(s.receipt, nil)

	txs, err := s.manager.EnsureAllowance(context.Background(), s.usdt, s.spender, s.owner, s.required, false)

	s.Nil(err)
	s.Equal([]common.Hash{approveHash}, txs)
}

func (s *ManagerTestSuite) Test_EnsureAllowance_ResetTokenRevokesBeforeApproval() {
	revokeHash := common.HexToHash("0x01")
	approveHash := common.HexToHash("0x02")
	s.mockERC20.EXPECT().Allowance(gomock.Any(), s.owner, s.spender).Return(big.NewInt(5), nil)
	gomock.InOrder(
		s.mockERC20.EXPECT().Approve(gomock.Any(), s.spender, big.NewInt(0)).Return(revokeHash, nil),
		s.mockWatcher.EXPECT().WaitForConfirmations(gomock.Any(), revokeHash).Return(s.receipt, nil),
		s.mockERC20.EXPECT().Approve(gomock.Any(), s.spender, big.NewInt(10000000000)).Return(approveHash, nil),
		s.mockWatcher.EXPECT().WaitForConfirmations(gomock.Any(), approveHash).Return(s.receipt, nil),
	)

	txs, err := s.manager.EnsureAllowance(context.Background(), s.usdt, s.spender, s.owner, s.required, false)

	s.Nil(err)
	s.Equal([]common.Hash{revokeHash, approveHash}, txs)
}

func (s *ManagerTestSuite) Test_EnsureAllowance_RegularTokenDoesNotRevoke() {
	approveHash := common.HexToHash("0x02")
	s.mockERC20.EXPECT().Allowance(gomock.Any(), s.owner, s.spender).Return(big.NewInt(5), nil)
	s.mockERC20.EXPECT().Approve(gomock.Any(), s.spender, big.NewInt(10000000000)).Return(approveHash, nil)
	s.mockWatcher.EXPECT().WaitForConfirmations(gomock.Any(), approveHash).Return(s.receipt, nil)

	txs, err := s.manager.EnsureAllowance(context.Background(), s.usdc, s.spender, s.owner, s.required, false)

	s.Nil(err)
	s.Equal([]common.Hash{approveHash}, txs)
}

func (s *ManagerTestSuite) Test_EnsureAllowance_InfiniteApproval() {
	approveHash := common.HexToHash("0x02")
	s.mockERC20.EXPECT().Allowance(gomock.Any(), s.owner, s.spender).Return(big.NewInt(0), nil)
	s.mockERC20.EXPECT().Approve(gomock.Any(), s.spender, math.MaxBig256).Return(approveHash, nil)
	s.mockWatcher.EXPECT().WaitForConfirmations(gomock.Any(), approveHash).Return(s.receipt, nil)

	_, err := s.manager.EnsureAllowance(context.Background(), s.usdc, s.spender, s.owner, s.required, true)

	s.Nil(err)
}

func (s *ManagerTestSuite) Test_EnsureAllowance_RevokeRevertedAbortsApproval() {
	revokeHash := common.HexToHash("0x01")
	s.mockERC20.EXPECT().Allowance(gomock.Any(), s.owner, s.spender).Return(big.NewInt(5), nil)
	s.mockERC20.EXPECT().Approve(gomock.Any(), s.spender, big.NewInt(0)).Return(revokeHash, nil)
	s.mockWatcher.EXPECT().WaitForConfirmations(gomock.Any(), revokeHash).Return(nil, fmt.Errorf("reverted"))

	txs, err := s.manager.EnsureAllowance(context.Background(), s.usdt, s.spender, s.owner, s.required, false)

	var approvalErr *allowance.ApprovalError
	s.True(errors.As(err, &approvalErr))
	s.Equal([]common.Hash{revokeHash}, txs)
}

func (s *ManagerTestSuite) Test_EnsureAllowance_UnconfirmedApprovalIsReturned() {
	approveHash := common.HexToHash("0x02")
	s.mockERC20.EXPECT().Allowance(gomock.Any(), s.owner, s.spender).Return(big.NewInt(0), nil)
	s.mockERC20.EXPECT().Approve(gomock.Any(), s.spender, big.NewInt(10000000000)).Return(approveHash, nil)
	s.mockWatcher.EXPECT().WaitForConfirmations(gomock.Any(), approveHash).Return(nil, fmt.Errorf("timeout"))

	txs, err := s.manager.EnsureAllowance(context.Background(), s.usdc, s.spender, s.owner, s.required, false)

	var approvalErr *allowance.ApprovalError
	s.True(errors.As(err, &approvalErr))
	s.Equal([]common.Hash{approveHash}, txs)
}

func (s *ManagerTestSuite) Test_EnsureAllowance_ApprovalSendFails() {
	s.mockERC20.EXPECT().Allowance(gomock.Any(), s.owner, s.spender).Return(big.NewInt(0), nil)
	s.mockERC20.EXPECT().Approve(gomock.Any(), s.spender, big.NewInt(10000000000)).Return(common.Hash{}, fmt.Errorf("rejected"))

	txs, err := s.manager.EnsureAllowance(context.Background(), s.usdt, s.spender, s.owner, s.required, false)

	var approvalErr *allowance.ApprovalError
	s.True(errors.As(err, &approvalErr))
	s.Empty(txs)
}
