package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
	"github.com/sprintertech/sprinter-minting/api/handlers"
	mock_handlers "github.com/sprintertech/sprinter-minting/api/handlers/mock"
	"github.com/sprintertech/sprinter-minting/lifecycle"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrdersHandlerTestSuite struct {
	suite.Suite

	handler      *handlers.OrdersHandler
	mockExecutor *mock_handlers.MockExecutor
	wg           *conc.WaitGroup
}

func TestRunOrdersHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OrdersHandlerTestSuite))
}

func (s *OrdersHandlerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockExecutor = mock_handlers.NewMockExecutor(ctrl)
	s.wg = &conc.WaitGroup{}
	s.handler = handlers.NewOrdersHandler(context.Background(), s.mockExecutor, s.wg)
}

func (s *OrdersHandlerTestSuite) post(body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	s.handler.HandleOrder(recorder, req)
	s.wg.Wait()
	return recorder
}

func (s *OrdersHandlerTestSuite) Test_HandleOrder_InvalidJSON() {
	recorder := s.post([]byte("{"))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *OrdersHandlerTestSuite) Test_HandleOrder_InvalidAmount() {
	recorder := s.post([]byte(`{"amount":"0","collateralAsset":"USDC","side":"MINT"}`))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *OrdersHandlerTestSuite) Test_HandleOrder_InvalidSide() {
	recorder := s.post([]byte(`{"amount":"10","collateralAsset":"USDC","side":"SWAP"}`))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *OrdersHandlerTestSuite) Test_HandleOrder_InvalidBeneficiary() {
	recorder := s.post([]byte(`{"amount":"10","collateralAsset":"USDC","side":"MINT","beneficiary":"0x01"}`))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *OrdersHandlerTestSuite) Test_HandleOrder_ShuttingDown() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	handler := handlers.NewOrdersHandler(ctx, s.mockExecutor, s.wg)
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader(
		[]byte(`{"amount":"10","collateralAsset":"USDC","side":"MINT"}`)))
	recorder := httptest.NewRecorder()

	handler.HandleOrder(recorder, req)

	s.Equal(http.StatusServiceUnavailable, recorder.Code)
}

func (s *OrdersHandlerTestSuite) Test_HandleOrder_LifecycleFailureStillAccepted() {
	s.mockExecutor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("error"))

	recorder := s.post([]byte(`{"amount":"10","collateralAsset":"USDC","side":"MINT"}`))

	s.Equal(http.StatusAccepted, recorder.Code)
}

func (s *OrdersHandlerTestSuite) Test_HandleOrder_ValidOrder() {
	beneficiary := common.HexToAddress("0x8BFCF9e2764BC84DE4BBd0a0f5AAF19F47027A73")
	var executed lifecycle.MintIntent
	s.mockExecutor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, intent lifecycle.MintIntent) (*lifecycle.Result, error) {
			executed = intent
			return &lifecycle.Result{IntentID: intent.ID, State: lifecycle.Submitted}, nil
		})

	body, _ := json.Marshal(handlers.OrderBody{
		Amount:                decimal.NewFromInt(10000),
		CollateralAsset:       "USDT",
		Side:                  ethena.MintSide,
		Beneficiary:           beneficiary.Hex(),
		AllowInfiniteApproval: true,
	})
	recorder := s.post(body)

	s.Equal(http.StatusAccepted, recorder.Code)
	var resp handlers.OrderResponse
	err := json.NewDecoder(recorder.Body).Decode(&resp)
	s.Nil(err)
	_, err = uuid.Parse(resp.ID)
	s.Nil(err)
	s.Equal(resp.ID, executed.ID)
	s.True(decimal.NewFromInt(10000).Equal(executed.Amount))
	s.Equal("USDT", executed.CollateralAsset)
	s.Equal(beneficiary, executed.Beneficiary)
	s.True(executed.AllowInfiniteApproval)
}
