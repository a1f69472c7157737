package confirmations

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
)

const (
	DEFAULT_TIMEOUT = 3 * time.Minute
)

var ErrTransactionReverted = errors.New("transaction reverted")

type ReceiptFetcher interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	LatestBlock(ctx context.Context) (*big.Int, error)
}

type Watcher struct {
	client        ReceiptFetcher
	confirmations uint64
	blocktime     time.Duration
	timeout       time.Duration
}

func NewWatcher(
	client ReceiptFetcher,
	confirmations uint64,
	blocktime time.Duration,
	timeout time.Duration,
) *Watcher {
	if timeout == 0 {
		timeout = DEFAULT_TIMEOUT
	}

	return &Watcher{
		client:        client,
		confirmations: confirmations,
		blocktime:     blocktime,
		timeout:       timeout,
	}
}

// WaitForConfirmations blocks until the transaction is included and has enough
// on-chain confirmations. A receipt with failed status returns ErrTransactionReverted.
func (w *Watcher) WaitForConfirmations(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for confirmations of %s", txHash.Hex())
		default:
			txReceipt, err := w.client.TransactionReceipt(ctx, txHash)
			if err != nil {
				log.Warn().Msgf("Error fetching transaction receipt: %v", err)
				w.sleep(ctx, w.blocktime)
				continue
			}

			if txReceipt == nil {
				w.sleep(ctx, w.blocktime)
				continue
			}

			if txReceipt.Status != types.ReceiptStatusSuccessful {
				return txReceipt, fmt.Errorf("%w: %s", ErrTransactionReverted, txHash.Hex())
			}

			currentBlock, err := w.client.LatestBlock(ctx)
			if err != nil {
				log.Warn().Msgf("Error fetching current block: %v", err)
				w.sleep(ctx, w.blocktime)
				continue
			}

			// the inclusion block counts as the first confirmation
			confirmations := new(big.Int).Add(new(big.Int).Sub(currentBlock, txReceipt.BlockNumber), big.NewInt(1))
			if confirmations.Cmp(new(big.Int).SetUint64(w.confirmations)) != -1 {
				return txReceipt, nil
			}
			// a lagging node may report a block before the inclusion block
			if confirmations.Sign() < 0 {
				confirmations.SetUint64(0)
			}

			// nolint:gosec
			duration := time.Duration(uint64(w.blocktime) * (w.confirmations - confirmations.Uint64()))
			log.Debug().Msgf("Waiting for tx %s for %s", txHash, duration)
			w.sleep(ctx, duration)
		}
	}
}

func (w *Watcher) sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
