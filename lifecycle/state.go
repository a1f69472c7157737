package lifecycle

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
)

type State string

const (
	Quoting        State = "QUOTING"
	OrderBuilt     State = "ORDER_BUILT"
	AllowanceReady State = "ALLOWANCE_READY"
	Signed         State = "SIGNED"
	Verified       State = "VERIFIED"
	Submitted      State = "SUBMITTED"
	Failed         State = "FAILED"
)

func (s State) Terminal() bool {
	return s == Submitted || s == Failed
}

// Status is a snapshot of a lifecycle reported on every transition.
type Status struct {
	IntentID    string    `json:"intentId"`
	State       State     `json:"state"`
	Reason      string    `json:"reason,omitempty"`
	OrderID     string    `json:"orderId,omitempty"`
	TxReference string    `json:"txReference,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type StatusReporter interface {
	Report(status Status)
}

type Metrics interface {
	StartLifecycle(intentID string)
	EndLifecycle(intentID string, state string, kind string)
}

// Result holds everything produced by a lifecycle. ApprovalTxs lists the
// confirmed approval transactions even when a later step fails.
type Result struct {
	IntentID    string
	State       State
	Order       *ethena.Order
	Signature   ethena.Signature
	ApprovalTxs []common.Hash
	TxReference string
}

type noopReporter struct{}

func (noopReporter) Report(Status) {}

type noopMetrics struct{}

func (noopMetrics) StartLifecycle(string)               {}
func (noopMetrics) EndLifecycle(string, string, string) {}
