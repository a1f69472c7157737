package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
	"github.com/sprintertech/sprinter-minting/lifecycle"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
)

type OrderBody struct {
	Amount                decimal.Decimal `json:"amount"`
	CollateralAsset       string          `json:"collateralAsset"`
	Side                  ethena.Side     `json:"side"`
	Beneficiary           string          `json:"beneficiary"`
	AllowInfiniteApproval bool            `json:"allowInfiniteApproval"`
}

type OrderResponse struct {
	ID string `json:"id"`
}

type Executor interface {
	Execute(ctx context.Context, intent lifecycle.MintIntent) (*lifecycle.Result, error)
}

type OrdersHandler struct {
	ctx      context.Context
	executor Executor
	wg       *conc.WaitGroup
}

// NewOrdersHandler creates the handler accepting intents. Lifecycles run on
// ctx and are tracked by wg so they can be drained on shutdown.
func NewOrdersHandler(ctx context.Context, executor Executor, wg *conc.WaitGroup) *OrdersHandler {
	return &OrdersHandler{
		ctx:      ctx,
		executor: executor,
		wg:       wg,
	}
}

// HandleOrder starts the lifecycle of the intent in the background and returns status code 202
// with the intent id that can be used to query the lifecycle status
func (h *OrdersHandler) HandleOrder(w http.ResponseWriter, r *http.Request) {
	b := &OrderBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	intent, err := h.intent(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	if h.ctx.Err() != nil {
		JSONError(w, fmt.Errorf("shutting down"), http.StatusServiceUnavailable)
		return
	}
	h.wg.Go(func() {
		_, err := h.executor.Execute(h.ctx, intent)
		if err != nil {
			log.Warn().Str("intentID", intent.ID).Msgf("Lifecycle failed: %s", err)
		}
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(OrderResponse{ID: intent.ID})
}

func (h *OrdersHandler) intent(b *OrderBody) (lifecycle.MintIntent, error) {
	var beneficiary common.Address
	if b.Beneficiary != "" {
		if !common.IsHexAddress(b.Beneficiary) {
			return lifecycle.MintIntent{}, fmt.Errorf("field 'beneficiary' invalid")
		}
		beneficiary = common.HexToAddress(b.Beneficiary)
	}

	intent := lifecycle.MintIntent{
		ID:                    uuid.NewString(),
		Amount:                b.Amount,
		CollateralAsset:       b.CollateralAsset,
		Side:                  b.Side,
		Beneficiary:           beneficiary,
		AllowInfiniteApproval: b.AllowInfiniteApproval,
	}
	return intent, intent.Validate()
}
