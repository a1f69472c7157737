package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-minting/chains/evm/signature"
	"github.com/sprintertech/sprinter-minting/config"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
)

const (
	DEFAULT_QUOTE_TYPE = "ALGO"
)

type QuoteFetcher interface {
	GetQuote(ctx context.Context, req ethena.QuoteRequest) (*ethena.Quote, error)
}

type OrderBuilder interface {
	Build(
		quote *ethena.Quote,
		benefactor common.Address,
		beneficiary common.Address,
		collateralAsset common.Address,
	) (*ethena.Order, error)
}

type AllowanceEnsurer interface {
	EnsureAllowance(
		ctx context.Context,
		token config.TokenConfig,
		spender common.Address,
		owner common.Address,
		required *big.Int,
		allowInfinite bool,
	) ([]common.Hash, error)
}

type OrderSigner interface {
	SignOrder(ctx context.Context, order *ethena.Order) (ethena.Signature, error)
}

type OrderVerifier interface {
	VerifyOrder(ctx context.Context, order *ethena.Order, signature ethena.Signature) (bool, error)
}

type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order *ethena.Order, signature ethena.Signature) (string, error)
}

type Option func(o *Orchestrator)

func WithQuoteType(quoteType string) Option {
	return func(o *Orchestrator) {
		if quoteType != "" {
			o.quoteType = quoteType
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

func WithStatusReporter(reporter StatusReporter) Option {
	return func(o *Orchestrator) {
		o.reporter = reporter
	}
}

func WithMetrics(metrics Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = metrics
	}
}

// WithReadiness sets the check run before each lifecycle to make sure the
// signing provider is connected.
func WithReadiness(ready func(ctx context.Context) error) Option {
	return func(o *Orchestrator) {
		o.ready = ready
	}
}

// Orchestrator drives an intent through quoting, order building, allowance,
// signing, verification and submission.
type Orchestrator struct {
	quotes    QuoteFetcher
	builder   OrderBuilder
	allowance AllowanceEnsurer
	signer    OrderSigner
	verifier  OrderVerifier
	submitter OrderSubmitter

	tokens          *config.TokenStore
	mintingContract common.Address
	signerAddress   common.Address
	quoteType       string

	ready    func(ctx context.Context) error
	now      func() time.Time
	reporter StatusReporter
	metrics  Metrics
}

func NewOrchestrator(
	quotes QuoteFetcher,
	builder OrderBuilder,
	allowance AllowanceEnsurer,
	signer OrderSigner,
	verifier OrderVerifier,
	submitter OrderSubmitter,
	tokens *config.TokenStore,
	mintingContract common.Address,
	signerAddress common.Address,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		quotes:          quotes,
		builder:         builder,
		allowance:       allowance,
		signer:          signer,
		verifier:        verifier,
		submitter:       submitter,
		tokens:          tokens,
		mintingContract: mintingContract,
		signerAddress:   signerAddress,
		quoteType:       DEFAULT_QUOTE_TYPE,
		now:             time.Now,
		reporter:        noopReporter{},
		metrics:         noopMetrics{},
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// lifecycle carries the state of a single execution.
type lifecycle struct {
	intent      MintIntent
	benefactor  common.Address
	beneficiary common.Address
	collateral  config.TokenConfig
	// allowanceToken is the token the minting contract pulls from the benefactor.
	allowanceToken config.TokenConfig
	amount         *big.Int
	result         *Result
}

// Execute runs the lifecycle of the intent once. On failure it returns the
// partial result together with an *Error.
func (o *Orchestrator) Execute(ctx context.Context, intent MintIntent) (*Result, error) {
	if intent.ID == "" {
		intent.ID = fmt.Sprintf("%d", o.now().UnixNano())
	}

	l := &lifecycle{
		intent: intent,
		result: &Result{
			IntentID:    intent.ID,
			ApprovalTxs: []common.Hash{},
		},
	}
	o.metrics.StartLifecycle(intent.ID)
	o.transition(l, Quoting)

	err := o.prepare(ctx, l)
	if err != nil {
		return l.result, err
	}

	quote, err := o.quotes.GetQuote(ctx, ethena.QuoteRequest{
		Pair:       ethena.Pair(strings.ToUpper(intent.CollateralAsset)),
		Type:       o.quoteType,
		Side:       intent.Side,
		Size:       intent.Amount.String(),
		Benefactor: l.benefactor,
	})
	if err != nil {
		return l.result, o.fail(l, ErrQuoteUnavailable, err)
	}
	if quote.Side == "" {
		quote.Side = intent.Side
	}
	if quote.Side != intent.Side {
		return l.result, o.fail(l, ErrQuoteUnavailable, fmt.Errorf("quote side %s does not match intent side %s", quote.Side, intent.Side))
	}

	order, err := o.builder.Build(quote, l.benefactor, l.beneficiary, l.collateral.Address)
	if err != nil {
		return l.result, o.fail(l, ErrQuoteUnavailable, err)
	}
	l.result.Order = order
	o.transition(l, OrderBuilt)

	required := l.amount
	quoted := order.CollateralAmount
	if intent.Side == ethena.RedeemSide {
		quoted = order.UsdeAmount
	}
	if quoted.Cmp(required) > 0 {
		required = quoted
	}
	txs, err := o.allowance.EnsureAllowance(
		ctx,
		l.allowanceToken,
		o.mintingContract,
		l.benefactor,
		required,
		intent.AllowInfiniteApproval)
	l.result.ApprovalTxs = append(l.result.ApprovalTxs, txs...)
	if err != nil {
		return l.result, o.fail(l, ErrApprovalFailed, err)
	}
	o.transition(l, AllowanceReady)

	if o.expired(order) {
		return l.result, o.fail(l, ErrOrderExpired, fmt.Errorf("order %s expired at %d before signing", order.OrderID, order.Expiry))
	}
	sig, err := o.signer.SignOrder(ctx, order)
	if err != nil {
		if errors.Is(err, signature.ErrSigningTimedOut) {
			return l.result, o.fail(l, ErrSigningTimedOut, err)
		}
		return l.result, o.fail(l, ErrSigningFailed, err)
	}
	l.result.Signature = sig
	o.transition(l, Signed)

	valid, err := o.verifier.VerifyOrder(ctx, order, sig)
	if err != nil {
		return l.result, o.fail(l, ErrInvalidSignature, fmt.Errorf("verification failed: %w", err))
	}
	if !valid {
		return l.result, o.fail(l, ErrInvalidSignature, fmt.Errorf("minting contract rejected signature of order %s", order.OrderID))
	}
	o.transition(l, Verified)

	if o.expired(order) {
		return l.result, o.fail(l, ErrOrderExpired, fmt.Errorf("order %s expired at %d before submission", order.OrderID, order.Expiry))
	}
	tx, err := o.submitter.SubmitOrder(ctx, order, sig)
	if err != nil {
		return l.result, o.fail(l, ErrSubmissionRejected, err)
	}
	l.result.TxReference = tx
	o.transition(l, Submitted)

	o.metrics.EndLifecycle(intent.ID, string(Submitted), "")
	return l.result, nil
}

// prepare validates the intent and resolves the accounts and tokens of the lifecycle.
func (o *Orchestrator) prepare(ctx context.Context, l *lifecycle) error {
	err := l.intent.Validate()
	if err != nil {
		return o.fail(l, ErrInvalidIntent, err)
	}

	if o.ready != nil {
		err := o.ready(ctx)
		if err != nil {
			return o.fail(l, ErrProviderUnavailable, err)
		}
	}

	l.benefactor = l.intent.Benefactor
	if l.benefactor == (common.Address{}) {
		l.benefactor = o.signerAddress
	}
	if l.benefactor != o.signerAddress {
		return o.fail(l, ErrInvalidIntent, fmt.Errorf("benefactor %s is not the signing account %s", l.benefactor.Hex(), o.signerAddress.Hex()))
	}
	l.beneficiary = l.intent.Beneficiary
	if l.beneficiary == (common.Address{}) {
		l.beneficiary = l.benefactor
	}

	l.collateral, err = o.tokens.ConfigBySymbol(l.intent.CollateralAsset)
	if err != nil {
		return o.fail(l, ErrInvalidIntent, err)
	}
	l.allowanceToken = l.collateral
	if l.intent.Side == ethena.RedeemSide {
		l.allowanceToken, err = o.tokens.ConfigBySymbol(ethena.SYNTHETIC_ASSET)
		if err != nil {
			return o.fail(l, ErrInvalidIntent, err)
		}
	}

	l.amount, err = l.allowanceToken.ToUnits(l.intent.Amount)
	if err != nil {
		return o.fail(l, ErrInvalidIntent, err)
	}
	return nil
}

func (o *Orchestrator) expired(order *ethena.Order) bool {
	// nolint:gosec
	return int64(order.Expiry) <= o.now().Unix()
}

func (o *Orchestrator) transition(l *lifecycle, state State) {
	l.result.State = state
	log.Info().Str("intentID", l.intent.ID).Msgf("Lifecycle in state %s", state)
	o.reporter.Report(o.status(l, ""))
}

func (o *Orchestrator) fail(l *lifecycle, kind error, err error) error {
	reason := err.Error()
	var submissionErr *ethena.SubmissionError
	if errors.As(err, &submissionErr) {
		reason = submissionErr.Reason
	}

	lifecycleErr := &Error{
		State:  l.result.State,
		Kind:   kind,
		Reason: reason,
		Err:    err,
	}
	log.Err(err).Str("intentID", l.intent.ID).Msgf("Lifecycle failed in state %s", l.result.State)

	l.result.State = Failed
	o.reporter.Report(o.status(l, lifecycleErr.Error()))
	o.metrics.EndLifecycle(l.intent.ID, string(Failed), kind.Error())
	return lifecycleErr
}

func (o *Orchestrator) status(l *lifecycle, reason string) Status {
	status := Status{
		IntentID:    l.intent.ID,
		State:       l.result.State,
		Reason:      reason,
		TxReference: l.result.TxReference,
		UpdatedAt:   o.now(),
	}
	if l.result.Order != nil {
		status.OrderID = l.result.Order.OrderID
	}
	return status
}
