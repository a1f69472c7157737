package signature

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-minting/protocol/ethena"
)

const (
	DEFAULT_SIGNING_TIMEOUT = 5 * time.Minute
)

var (
	ErrSigningTimedOut = errors.New("signing timed out")
	ErrSigningFailed   = errors.New("signing failed")
)

type TypedDataSigner interface {
	// SignTypedData returns the hex encoded signature of the typed data.
	SignTypedData(ctx context.Context, typedData apitypes.TypedData) (string, error)
}

type OrderSigner struct {
	signer  TypedDataSigner
	domain  Domain
	timeout time.Duration
}

func NewOrderSigner(signer TypedDataSigner, domain Domain, timeout time.Duration) *OrderSigner {
	if timeout == 0 {
		timeout = DEFAULT_SIGNING_TIMEOUT
	}

	return &OrderSigner{
		signer:  signer,
		domain:  domain,
		timeout: timeout,
	}
}

// SignOrder signs the order typed data through the signing provider. The
// provider may wait on out of process approval so the call is bounded by the
// signing timeout.
func (s *OrderSigner) SignOrder(ctx context.Context, order *ethena.Order) (ethena.Signature, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	typedData := OrderTypedData(order, s.domain)
	type result struct {
		sig string
		err error
	}
	resChn := make(chan result, 1)
	go func() {
		sig, err := s.signer.SignTypedData(ctx, typedData)
		resChn <- result{sig: sig, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ethena.Signature{}, fmt.Errorf("%w: order %s after %s", ErrSigningTimedOut, order.OrderID, s.timeout)
		}
		return ethena.Signature{}, fmt.Errorf("%w: %s", ErrSigningFailed, ctx.Err())
	case res := <-resChn:
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) {
				return ethena.Signature{}, fmt.Errorf("%w: %s", ErrSigningTimedOut, res.err)
			}
			return ethena.Signature{}, fmt.Errorf("%w: %s", ErrSigningFailed, res.err)
		}
		if strings.TrimSpace(res.sig) == "" {
			return ethena.Signature{}, fmt.Errorf("%w: empty signature", ErrSigningFailed)
		}

		sig := ethena.Signature{
			Type:  ethena.EIP712,
			Bytes: Normalize(res.sig),
		}
		log.Debug().Str("orderID", order.OrderID).Msgf("Signed order: %s", sig.Bytes)
		return sig, nil
	}
}

// Normalize makes sure the hex signature carries exactly one 0x prefix.
func Normalize(signature string) string {
	signature = strings.TrimSpace(signature)
	for strings.HasPrefix(signature, "0x") || strings.HasPrefix(signature, "0X") {
		signature = signature[2:]
	}
	return "0x" + signature
}
